package scores

import (
	"fmt"

	"neoagtwin/internal/tabular"
)

// AlleleColumns names the columns an allele-scoped score file is read from.
type AlleleColumns struct {
	Allele  string
	Peptide string
	Score   string
}

// DefaultAlleleColumns matches the conventional score-file layout.
func DefaultAlleleColumns() AlleleColumns {
	return AlleleColumns{Allele: "allele", Peptide: "peptide", Score: "score"}
}

func (c *AlleleColumns) applyDefaults() {
	d := DefaultAlleleColumns()
	if c.Allele == "" {
		c.Allele = d.Allele
	}
	if c.Peptide == "" {
		c.Peptide = d.Peptide
	}
	if c.Score == "" {
		c.Score = d.Score
	}
}

// ReadAlleleScores builds an allele-scoped table from a CSV file. Later rows
// for the same (allele, peptide) pair overwrite earlier ones.
func ReadAlleleScores(path, name string, columns AlleleColumns) (*AlleleScores, error) {
	columns.applyDefaults()

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scores := NewAlleleScores(name)
	for row := 0; row < table.Len(); row++ {
		allele, err := table.Field(row, columns.Allele)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		peptide, err := table.Field(row, columns.Peptide)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		score, err := table.Float(row, columns.Score)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scores.Set(allele, peptide, score)
	}
	return scores, nil
}

// PeptideColumns names the columns a sequence-keyed score file is read from.
type PeptideColumns struct {
	Peptide string
	Score   string
}

// DefaultPeptideColumns matches the conventional score-file layout.
func DefaultPeptideColumns() PeptideColumns {
	return PeptideColumns{Peptide: "peptide", Score: "score"}
}

// ReadPeptideScores builds a sequence-keyed table from a CSV file.
func ReadPeptideScores(path, name string, columns PeptideColumns) (*PeptideScores, error) {
	d := DefaultPeptideColumns()
	if columns.Peptide == "" {
		columns.Peptide = d.Peptide
	}
	if columns.Score == "" {
		columns.Score = d.Score
	}

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scores := NewPeptideScores(name)
	for row := 0; row < table.Len(); row++ {
		peptide, err := table.Field(row, columns.Peptide)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		score, err := table.Float(row, columns.Score)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scores.Set(peptide, score)
	}
	return scores, nil
}
