// Package sampling implements the random draws used by the cell simulation:
// Bernoulli trials, Gamma-Poisson counts and weighted choice with and
// without replacement. Every function takes an explicit *rand.Rand so that
// runs are reproducible and independent simulations can carry independent
// streams.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrInvalidParameter reports a distribution parameter outside its
	// valid range, such as a non-positive mean or variance.
	ErrInvalidParameter = errors.New("invalid distribution parameter")

	// ErrZeroWeights reports a weight vector that sums to zero, which
	// leaves no valid sampling distribution.
	ErrZeroWeights = errors.New("weights sum to zero")
)

// Bernoulli draws a single trial with success probability p.
func Bernoulli(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// GammaPoisson draws a count from a Gamma-Poisson mixture with the given
// mean and variance: a rate is drawn from Gamma(k, theta) with
// k = mean^2/variance and theta = variance/mean, and the count from
// Poisson(rate). The mixture is over-dispersed relative to a plain Poisson
// with the same mean. Both parameters must be strictly positive.
func GammaPoisson(rng *rand.Rand, mean, variance float64) (int, error) {
	if mean <= 0 {
		return 0, fmt.Errorf("%w: mean %g must be positive", ErrInvalidParameter, mean)
	}
	if variance <= 0 {
		return 0, fmt.Errorf("%w: variance %g must be positive", ErrInvalidParameter, variance)
	}

	shape := (mean * mean) / variance
	scale := variance / mean
	rate := gamma(rng, shape, scale)
	return poisson(rng, rate), nil
}

// gamma draws from Gamma(shape, scale) using the Marsaglia-Tsang squeeze
// method. Shapes below 1 are boosted to shape+1 and corrected with
// U^(1/shape).
func gamma(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return gamma(rng, shape+1, scale) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// poisson draws from Poisson(lambda). Small rates use Knuth's product
// method; larger rates use Hormann's transformed rejection (PTRS), which
// stays O(1) as lambda grows.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda < 30 {
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0
		for {
			p *= rng.Float64()
			if p <= limit {
				return k
			}
			k++
		}
	}

	b := 0.931 + 2.53*math.Sqrt(lambda)
	a := -0.059 + 0.02483*b
	invAlpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)
	logLambda := math.Log(lambda)
	for {
		u := rng.Float64() - 0.5
		v := rng.Float64()
		us := 0.5 - math.Abs(u)
		k := math.Floor((2*a/us+b)*u + lambda + 0.43)
		if us >= 0.07 && v <= vr {
			return int(k)
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1)
		if math.Log(v*invAlpha/(a/(us*us)+b)) <= k*logLambda-lambda-lg {
			return int(k)
		}
	}
}

// ChoiceReplace draws n indices from the weighted distribution over weights,
// with replacement. Weights need not be normalized but must not all be zero
// and must be non-negative.
func ChoiceReplace(rng *rand.Rand, weights []float64, n int) ([]int, error) {
	if n <= 0 || len(weights) == 0 {
		return nil, nil
	}

	cumulative, total, err := cumulate(weights)
	if err != nil {
		return nil, err
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = searchCumulative(cumulative, rng.Float64()*total)
	}
	return indices, nil
}

// ChoiceNoReplace draws n distinct indices from the weighted distribution
// over weights, without replacement: each drawn index is removed from the
// pool before the next draw. n must not exceed len(weights).
func ChoiceNoReplace(rng *rand.Rand, weights []float64, n int) ([]int, error) {
	if n <= 0 || len(weights) == 0 {
		return nil, nil
	}
	if n > len(weights) {
		return nil, fmt.Errorf("cannot draw %d of %d without replacement", n, len(weights))
	}

	remaining := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %g at index %d", ErrInvalidParameter, w, i)
		}
		remaining[i] = w
		total += w
	}
	if total == 0 {
		return nil, ErrZeroWeights
	}

	indices := make([]int, 0, n)
	for len(indices) < n {
		target := rng.Float64() * total
		chosen := -1
		acc := 0.0
		for i, w := range remaining {
			if w == 0 {
				continue
			}
			acc += w
			if target < acc {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			// float accumulation fell short of total; take the last
			// index that still has weight
			for i := len(remaining) - 1; i >= 0; i-- {
				if remaining[i] > 0 {
					chosen = i
					break
				}
			}
		}
		if chosen < 0 {
			return nil, ErrZeroWeights
		}
		indices = append(indices, chosen)
		total -= remaining[chosen]
		remaining[chosen] = 0
	}
	return indices, nil
}

func cumulate(weights []float64) ([]float64, float64, error) {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, 0, fmt.Errorf("%w: negative weight %g at index %d", ErrInvalidParameter, w, i)
		}
		total += w
		cumulative[i] = total
	}
	if total == 0 {
		return nil, 0, ErrZeroWeights
	}
	return cumulative, total, nil
}

func searchCumulative(cumulative []float64, target float64) int {
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
