package cell

import (
	"fmt"
	"math/rand"

	"neoagtwin/internal/model"
	"neoagtwin/internal/sampling"
	"neoagtwin/internal/scores"
)

// Cleaver simulates antigen processing: which peptide fragments a protein's
// molecules actually yield. Each peptide is weighted by its best
// presentation score across the cell's alleles, the peptide's best chance of
// mattering to any of them.
type Cleaver struct {
	Scores *scores.AlleleScores
}

// Cleave draws yield peptides from the weighted distribution over the
// candidates, with replacement: cleavage is a repeated independent molecular
// event and the same fragment can be produced many times. An empty candidate
// pool yields an empty result. Candidates that all score zero against every
// allele leave no valid distribution and are a configuration error.
func (c Cleaver) Cleave(rng *rand.Rand, candidates []model.Peptide, alleles []model.Allele, yield int) ([]model.Peptide, error) {
	if len(candidates) == 0 || yield <= 0 {
		return nil, nil
	}

	weights := make([]float64, len(candidates))
	for i, pep := range candidates {
		weights[i] = c.Scores.MaxForAlleles(pep.Sequence, alleles)
	}

	indices, err := sampling.ChoiceReplace(rng, weights, yield)
	if err != nil {
		return nil, fmt.Errorf("cleave: %w", err)
	}

	selected := make([]model.Peptide, len(indices))
	for i, idx := range indices {
		selected[i] = candidates[idx]
	}
	return selected, nil
}
