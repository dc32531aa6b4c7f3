package cell

import (
	"fmt"
	"math/rand"
	"sort"

	"neoagtwin/internal/model"
	"neoagtwin/internal/sampling"
	"neoagtwin/internal/scores"
)

// DefaultBindingEpsilon keeps zero-scored peptides eligible with a vanishing
// but non-zero probability, which also rules out an all-zero weight vector.
const DefaultBindingEpsilon = 1e-7

// BindingSimulator simulates the competition of a peptide pool for the MHC
// molecules of each allele. Competition is per allele only: every allele
// sees the full pool, so a peptide bound by one allele is still available to
// the others.
type BindingSimulator struct {
	Scores  *scores.AlleleScores
	Epsilon float64
}

// NewBindingSimulator returns a simulator with the default epsilon.
func NewBindingSimulator(binding *scores.AlleleScores) BindingSimulator {
	return BindingSimulator{Scores: binding, Epsilon: DefaultBindingEpsilon}
}

// Bound runs the binding competition for every allele in hlaCounts and
// returns the concatenated peptide:MHC complexes. Alleles are processed in
// sorted name order; that ordering is the only sequencing dependency, since
// no state crosses alleles.
func (b BindingSimulator) Bound(rng *rand.Rand, pool []model.Peptide, hlaCounts map[string]int) ([]model.PMHC, error) {
	alleles := make([]string, 0, len(hlaCounts))
	for name := range hlaCounts {
		alleles = append(alleles, name)
	}
	sort.Strings(alleles)

	var bound []model.PMHC
	for _, allele := range alleles {
		complexes, err := b.boundForAllele(rng, pool, allele, hlaCounts[allele])
		if err != nil {
			return nil, fmt.Errorf("allele %s: %w", allele, err)
		}
		bound = append(bound, complexes...)
	}
	return bound, nil
}

func (b BindingSimulator) boundForAllele(rng *rand.Rand, pool []model.Peptide, allele string, molecules int) ([]model.PMHC, error) {
	if len(pool) == 0 || molecules <= 0 {
		return nil, nil
	}

	eps := b.Epsilon
	if eps <= 0 {
		eps = DefaultBindingEpsilon
	}

	weights := make([]float64, len(pool))
	total := 0.0
	for i, pep := range pool {
		weights[i] = b.Scores.Score(allele, pep.Sequence) + eps
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}

	// nudge the first weight to absorb residual float error so the
	// distribution sums to exactly 1
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	weights[0] += 1 - sum

	// an allele cannot bind more peptide molecules than candidates exist
	draws := molecules
	if len(pool) < draws {
		draws = len(pool)
	}

	indices, err := sampling.ChoiceNoReplace(rng, weights, draws)
	if err != nil {
		return nil, err
	}

	complexes := make([]model.PMHC, len(indices))
	for i, idx := range indices {
		complexes[i] = model.PMHC{Peptide: pool[idx].Sequence, Allele: allele}
	}
	return complexes, nil
}
