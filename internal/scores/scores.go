// Package scores holds the read-only score tables the simulation samples
// from. Tables are built once from tabular input and never mutated, so they
// are safe to share across concurrent simulations without locking.
package scores

import "neoagtwin/internal/model"

type alleleKey struct {
	Allele   string
	Sequence string
}

// AlleleScores maps (allele name, peptide sequence) pairs to a score.
// Missing pairs score 0; a lookup never fails.
type AlleleScores struct {
	name   string
	scores map[alleleKey]float64
}

// NewAlleleScores builds an allele-scoped table from explicit entries.
func NewAlleleScores(name string) *AlleleScores {
	return &AlleleScores{name: name, scores: make(map[alleleKey]float64)}
}

// Set records the score for one (allele, sequence) pair. Set is only valid
// during table construction, before the table is shared.
func (t *AlleleScores) Set(allele, sequence string, score float64) {
	t.scores[alleleKey{Allele: allele, Sequence: sequence}] = score
}

// Name returns the label this table was built with.
func (t *AlleleScores) Name() string { return t.name }

// Len returns the number of scored pairs.
func (t *AlleleScores) Len() int { return len(t.scores) }

// Score returns the score for the pair, or 0 when the pair is absent.
func (t *AlleleScores) Score(allele, sequence string) float64 {
	return t.scores[alleleKey{Allele: allele, Sequence: sequence}]
}

// Has reports whether the pair is present in the table.
func (t *AlleleScores) Has(allele, sequence string) bool {
	_, ok := t.scores[alleleKey{Allele: allele, Sequence: sequence}]
	return ok
}

// Min returns the smallest score in the table, or 0 for an empty table.
func (t *AlleleScores) Min() float64 {
	first := true
	minimum := 0.0
	for _, s := range t.scores {
		if first || s < minimum {
			minimum = s
			first = false
		}
	}
	return minimum
}

// Max returns the largest score in the table, or 0 for an empty table.
func (t *AlleleScores) Max() float64 {
	first := true
	maximum := 0.0
	for _, s := range t.scores {
		if first || s > maximum {
			maximum = s
			first = false
		}
	}
	return maximum
}

// MaxForAlleles returns the best score the sequence achieves across the
// given alleles: its best chance of being relevant to any allele in a cell.
func (t *AlleleScores) MaxForAlleles(sequence string, alleles []model.Allele) float64 {
	best := 0.0
	for i, allele := range alleles {
		s := t.Score(allele.Name, sequence)
		if i == 0 || s > best {
			best = s
		}
	}
	return best
}

// AlleleNames returns the distinct allele names appearing in the table.
func (t *AlleleScores) AlleleNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for key := range t.scores {
		if _, ok := seen[key.Allele]; ok {
			continue
		}
		seen[key.Allele] = struct{}{}
		names = append(names, key.Allele)
	}
	return names
}

// PeptideScores maps peptide sequences to a score with no allele dimension.
// It backs the self-similarity and response likelihoods of the adjacent
// subsystems. Missing sequences score 0.
type PeptideScores struct {
	name   string
	scores map[string]float64
}

// NewPeptideScores builds a sequence-keyed table from explicit entries.
func NewPeptideScores(name string) *PeptideScores {
	return &PeptideScores{name: name, scores: make(map[string]float64)}
}

// Set records the score for one sequence, during construction only.
func (t *PeptideScores) Set(sequence string, score float64) {
	t.scores[sequence] = score
}

// Name returns the label this table was built with.
func (t *PeptideScores) Name() string { return t.name }

// Len returns the number of scored sequences.
func (t *PeptideScores) Len() int { return len(t.scores) }

// Score returns the score for the sequence, or 0 when absent.
func (t *PeptideScores) Score(sequence string) float64 {
	return t.scores[sequence]
}

// Has reports whether the sequence is present in the table.
func (t *PeptideScores) Has(sequence string) bool {
	_, ok := t.scores[sequence]
	return ok
}
