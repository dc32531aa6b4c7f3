// Package cell implements the per-cell stochastic generative pipeline:
// genetic simulation per variant, cleavage of candidate peptides, the
// peptide:MHC binding competition and the presentation filter that together
// materialize one simulated cancer cell.
package cell

import (
	"fmt"
	"math/rand"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/model"
	"neoagtwin/internal/sampling"
)

const (
	// DefaultSequencingPseudocount smooths sequencing depths. It is carried
	// for parity with the expression pseudocount but the VAF contract is
	// the plain alt/(ref+alt) fraction, so it is currently unused.
	DefaultSequencingPseudocount = 0.5

	// DefaultExpressionPseudocount is added to expression means before
	// Gamma-Poisson sampling, keeping zero-expression records sampleable.
	DefaultExpressionPseudocount = 1.0
)

// GeneticSimulator samples, for one variant, whether it reached the DNA and
// how many protein molecules carry it.
type GeneticSimulator struct {
	SequencingPseudocount float64
	ExpressionPseudocount float64
}

// NewGeneticSimulator returns a simulator with the default pseudocounts.
func NewGeneticSimulator() GeneticSimulator {
	return GeneticSimulator{
		SequencingPseudocount: DefaultSequencingPseudocount,
		ExpressionPseudocount: DefaultExpressionPseudocount,
	}
}

// Simulate runs the genetic simulation for one variant backed by its
// expression source. A variant absent from the DNA produces no protein, so
// the expression draw is skipped entirely. Otherwise a raw molecule count is
// drawn from the Gamma-Poisson mixture over the protein's expression and
// scaled by the RNA VAF, since not all transcripts carry the mutation.
func (s GeneticSimulator) Simulate(rng *rand.Rand, variant model.SomaticVariant, protein model.Protein) (model.GeneticResult, error) {
	if !sampling.Bernoulli(rng, variant.DNAVAF()) {
		return model.GeneticResult{}, nil
	}

	raw, err := sampling.GammaPoisson(
		rng,
		protein.ExpressionMean+s.ExpressionPseudocount,
		protein.ExpressionVar,
	)
	if err != nil {
		return model.GeneticResult{}, fmt.Errorf("variant %s: %w", variant.Name, err)
	}

	return model.GeneticResult{
		InDNA:        true,
		ProteinCount: int(float64(raw) * variant.RNAVAF()),
	}, nil
}

// SimulateAll runs the genetic simulation independently for every variant in
// the catalog, in sorted name order so a seeded run is reproducible. No
// variant's result depends on another's.
func (s GeneticSimulator) SimulateAll(rng *rand.Rand, cat *catalog.Catalog) (map[string]model.GeneticResult, error) {
	results := make(map[string]model.GeneticResult, cat.NumVariants())
	for _, name := range cat.VariantNames() {
		variant, _ := cat.Variant(name)
		protein, ok := cat.VariantProtein(name)
		if !ok {
			return nil, fmt.Errorf("variant %s has no expression source", name)
		}
		result, err := s.Simulate(rng, variant, protein)
		if err != nil {
			return nil, err
		}
		results[name] = result
	}
	return results, nil
}
