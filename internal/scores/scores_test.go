package scores

import (
	"os"
	"path/filepath"
	"testing"

	"neoagtwin/internal/model"
)

func newTestAlleleScores() *AlleleScores {
	t := NewAlleleScores("binding_scores")
	t.Set("A0201", "RQAEITPTK", 0.9)
	t.Set("A0201", "LYQIQALRW", 0.05)
	t.Set("C0701", "RQAEITPTK", 0.3)
	t.Set("C0701", "SILDNQLVR", 0.6)
	return t
}

func TestAlleleScoresDefaultZero(t *testing.T) {
	table := newTestAlleleScores()

	if got := table.Score("A0201", "UNSCORED"); got != 0 {
		t.Fatalf("missing pair scored %g, want 0", got)
	}
	if table.Has("A0201", "UNSCORED") {
		t.Fatal("missing pair reported as present")
	}
	if !table.Has("C0701", "SILDNQLVR") {
		t.Fatal("present pair reported as missing")
	}
}

func TestAlleleScoresMinMax(t *testing.T) {
	table := newTestAlleleScores()

	if got := table.Min(); got != 0.05 {
		t.Fatalf("min = %g, want 0.05", got)
	}
	if got := table.Max(); got != 0.9 {
		t.Fatalf("max = %g, want 0.9", got)
	}
}

func TestMaxForAlleles(t *testing.T) {
	table := newTestAlleleScores()
	alleles := []model.Allele{{Name: "A0201"}, {Name: "C0701"}}

	if got := table.MaxForAlleles("RQAEITPTK", alleles); got != 0.9 {
		t.Fatalf("max across alleles = %g, want 0.9", got)
	}
	if got := table.MaxForAlleles("SILDNQLVR", alleles); got != 0.6 {
		t.Fatalf("max across alleles = %g, want 0.6", got)
	}
	if got := table.MaxForAlleles("UNSCORED", alleles); got != 0 {
		t.Fatalf("max for unscored sequence = %g, want 0", got)
	}
}

func TestAlleleNames(t *testing.T) {
	table := newTestAlleleScores()

	names := table.AlleleNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 allele names, got %v", names)
	}
}

func TestPeptideScores(t *testing.T) {
	table := NewPeptideScores("distance_from_self")
	table.Set("RQAEITPTK", 0.42)

	if got := table.Score("RQAEITPTK"); got != 0.42 {
		t.Fatalf("score = %g, want 0.42", got)
	}
	if got := table.Score("UNSCORED"); got != 0 {
		t.Fatalf("missing sequence scored %g, want 0", got)
	}
	if table.Len() != 1 {
		t.Fatalf("len = %d, want 1", table.Len())
	}
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadAlleleScoresCSV(t *testing.T) {
	path := writeTempCSV(t, "binding.csv", "allele,peptide,score\nA0201,RQAEITPTK,0.9\nC0701,SILDNQLVR,0.6\n")

	table, err := ReadAlleleScores(path, "binding_scores", AlleleColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("len = %d, want 2", table.Len())
	}
	if got := table.Score("A0201", "RQAEITPTK"); got != 0.9 {
		t.Fatalf("score = %g, want 0.9", got)
	}
}

func TestReadAlleleScoresCustomColumns(t *testing.T) {
	path := writeTempCSV(t, "pres.csv", "hla,Mut_peptide,likelihood\nA0201,RQAEITPTK,0.7\n")

	table, err := ReadAlleleScores(path, "presentation_scores", AlleleColumns{
		Allele:  "hla",
		Peptide: "Mut_peptide",
		Score:   "likelihood",
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := table.Score("A0201", "RQAEITPTK"); got != 0.7 {
		t.Fatalf("score = %g, want 0.7", got)
	}
}

func TestReadPeptideScoresCSV(t *testing.T) {
	path := writeTempCSV(t, "dfs.csv", "peptide,score\nRQAEITPTK,0.12\n")

	table, err := ReadPeptideScores(path, "distance_from_self", PeptideColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := table.Score("RQAEITPTK"); got != 0.12 {
		t.Fatalf("score = %g, want 0.12", got)
	}
}
