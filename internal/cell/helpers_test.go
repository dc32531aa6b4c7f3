package cell

import (
	"math/rand"
	"testing"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/model"
	"neoagtwin/internal/scores"
)

var testPeptideSequences = []string{
	"RQAEITPTK",
	"LYQIQALRW",
	"RALVVPCPR",
	"SILDNQLVR",
}

func testAlleles() []model.Allele {
	return []model.Allele{
		{Name: "A0201", Gene: "HLA-A0201"},
		{Name: "C0701", Gene: "HLA-C0701"},
	}
}

// testCatalog carries one fairly common variant whose peptides are the four
// test sequences, plus the HLA expression sources.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	proteins := []model.Protein{
		{Name: "ENSG00000197530", ExpressionMean: 7.016, ExpressionVar: 1.0},
		{Name: "HLA-A0201", ExpressionMean: 35.2, ExpressionVar: 2.0},
		{Name: "HLA-C0701", ExpressionMean: 5.6, ExpressionVar: 0.5},
	}
	variants := []model.SomaticVariant{
		{Name: "1_1629672_C/F", Gene: "ENSG00000197530", DNARefCount: 5, DNAAltCount: 10, RNARefCount: 5, RNAAltCount: 25},
	}
	peptides := make([]model.Peptide, len(testPeptideSequences))
	for i, seq := range testPeptideSequences {
		peptides[i] = model.Peptide{Sequence: seq, Variant: "1_1629672_C/F"}
	}

	cat, err := catalog.Build(proteins, variants, peptides, testAlleles(), catalog.Options{})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

// emptyCatalog has alleles and their expression sources but no variants and
// no peptides.
func emptyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	proteins := []model.Protein{
		{Name: "HLA-A0201", ExpressionMean: 35.2, ExpressionVar: 2.0},
		{Name: "HLA-C0701", ExpressionMean: 5.6, ExpressionVar: 0.5},
	}
	cat, err := catalog.Build(proteins, nil, nil, testAlleles(), catalog.Options{})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

// randomScores fills a table with uniform scores in [lo, hi) for every
// (allele, sequence) pair.
func randomScores(name string, seed int64, lo, hi float64) *scores.AlleleScores {
	rng := rand.New(rand.NewSource(seed))
	table := scores.NewAlleleScores(name)
	for _, allele := range testAlleles() {
		for _, seq := range testPeptideSequences {
			table.Set(allele.Name, seq, lo+rng.Float64()*(hi-lo))
		}
	}
	return table
}

func testPeptides() []model.Peptide {
	peptides := make([]model.Peptide, len(testPeptideSequences))
	for i, seq := range testPeptideSequences {
		peptides[i] = model.Peptide{Sequence: seq, Variant: "1_1629672_C/F"}
	}
	return peptides
}
