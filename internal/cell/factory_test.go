package cell

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestFactory() Factory {
	binding := randomScores("binding_scores", 8675308, 3, 7)
	presentation := randomScores("presentation_scores", 8675309, 0, 1)
	return NewFactory(binding, presentation)
}

func TestCreateCellInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	factory := newTestFactory()
	cat := testCatalog(t)

	c, err := factory.CreateCell(rng, cat, "cell")
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}

	// selected pool size equals the summed protein counts
	expected := 0
	for _, result := range c.Genetics {
		expected += result.ProteinCount
	}
	if len(c.SelectedPeptides) != expected {
		t.Fatalf("selected = %d, want %d", len(c.SelectedPeptides), expected)
	}

	// hla counts are populated for every input allele
	totalMolecules := 0
	for _, allele := range cat.Alleles() {
		count, ok := c.HLACounts[allele.Name]
		if !ok {
			t.Fatalf("missing hla count for %s", allele.Name)
		}
		if count < 0 {
			t.Fatalf("negative hla count for %s", allele.Name)
		}
		totalMolecules += count
	}

	if len(c.Presented) > len(c.Bound) {
		t.Fatalf("presented %d > bound %d", len(c.Presented), len(c.Bound))
	}
	if len(c.Bound) > totalMolecules {
		t.Fatalf("bound %d > total molecules %d", len(c.Bound), totalMolecules)
	}

	// every presented complex is one of the bound complexes
	boundSet := map[string]int{}
	for _, pmhc := range c.Bound {
		boundSet[pmhc.Allele+"|"+pmhc.Peptide]++
	}
	for _, pmhc := range c.Presented {
		key := pmhc.Allele + "|" + pmhc.Peptide
		if boundSet[key] == 0 {
			t.Fatalf("presented complex %v was never bound", pmhc)
		}
		boundSet[key]--
	}

	// every bound peptide came from the candidate pool
	poolSet := map[string]bool{}
	for _, seq := range c.SelectedPeptides {
		poolSet[seq] = true
	}
	for _, pmhc := range c.Bound {
		if !poolSet[pmhc.Peptide] {
			t.Fatalf("bound peptide %s not in candidate pool", pmhc.Peptide)
		}
	}
}

func TestCreateCellPerAlleleBoundCount(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	factory := newTestFactory()
	cat := testCatalog(t)

	c, err := factory.CreateCell(rng, cat, "cell")
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}

	perAllele := map[string]int{}
	for _, pmhc := range c.Bound {
		perAllele[pmhc.Allele]++
	}
	for allele, molecules := range c.HLACounts {
		want := molecules
		if len(c.SelectedPeptides) < want {
			want = len(c.SelectedPeptides)
		}
		if len(c.SelectedPeptides) == 0 {
			want = 0
		}
		if perAllele[allele] != want {
			t.Fatalf("allele %s bound %d, want %d", allele, perAllele[allele], want)
		}
	}
}

func TestCreateCellEmptyCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	factory := newTestFactory()
	cat := emptyCatalog(t)

	c, err := factory.CreateCell(rng, cat, "empty")
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}

	if len(c.SelectedPeptides) != 0 {
		t.Fatalf("selected = %d, want 0", len(c.SelectedPeptides))
	}
	if len(c.Bound) != 0 || len(c.Presented) != 0 {
		t.Fatalf("bound/presented not empty: %d/%d", len(c.Bound), len(c.Presented))
	}
	// hla abundance is independent of the variant and peptide data
	if len(c.HLACounts) != len(cat.Alleles()) {
		t.Fatalf("hla counts = %d entries, want %d", len(c.HLACounts), len(cat.Alleles()))
	}
}

func TestCreateCellDeterministic(t *testing.T) {
	factory := newTestFactory()
	cat := testCatalog(t)

	first, err := factory.CreateCell(rand.New(rand.NewSource(1234)), cat, "cell")
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}
	second, err := factory.CreateCell(rand.New(rand.NewSource(1234)), cat, "cell")
	if err != nil {
		t.Fatalf("create cell: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different cells:\n%+v\n%+v", first, second)
	}
}

func TestCreateCellGeneticsGateProtein(t *testing.T) {
	factory := newTestFactory()
	cat := testCatalog(t)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		c, err := factory.CreateCell(rng, cat, "cell")
		if err != nil {
			t.Fatalf("create cell: %v", err)
		}
		for name, result := range c.Genetics {
			if !result.InDNA && result.ProteinCount != 0 {
				t.Fatalf("variant %s: protein without DNA presence", name)
			}
		}
	}
}
