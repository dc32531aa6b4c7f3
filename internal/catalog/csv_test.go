package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadProteinsDefaults(t *testing.T) {
	path := writeTempCSV(t, "genes.csv", "gene_id,FPKM,FPKM_VAR\nENSG1,7.02,1.0\nENSG2,0.0,-1\n")

	proteins, err := ReadProteins(path, ProteinColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(proteins) != 2 {
		t.Fatalf("proteins = %d, want 2", len(proteins))
	}
	if proteins[0].Name != "ENSG1" || proteins[0].ExpressionMean != 7.02 {
		t.Fatalf("unexpected protein: %+v", proteins[0])
	}
	// the non-positive variance is carried through; Build corrects it
	if proteins[1].ExpressionVar != -1 {
		t.Fatalf("variance = %g, want raw -1", proteins[1].ExpressionVar)
	}
}

func TestReadVariantsReadCounts(t *testing.T) {
	path := writeTempCSV(t, "variants.csv",
		"Mutation_ID,Gene_ID,WXS_tumor_depth_ref,WXS_tumor_depth_alt,RNA_tumor_depth_ref,RNA_tumor_depth_alt\n"+
			"1_1629672_C/F,ENSG1,5,10,5,25\n")

	variants, err := ReadVariants(path, VariantColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("variants = %d, want 1", len(variants))
	}
	v := variants[0]
	if v.DNARefCount != 5 || v.DNAAltCount != 10 || v.RNARefCount != 5 || v.RNAAltCount != 25 {
		t.Fatalf("unexpected counts: %+v", v)
	}
	if v.VAF != nil {
		t.Fatal("vaf should be unset when derived from counts")
	}
}

func TestReadVariantsExplicitVAF(t *testing.T) {
	path := writeTempCSV(t, "variants.csv", "Mutation_ID,Gene_ID,vaf\nm1,ENSG1,0.25\n")

	variants, err := ReadVariants(path, VariantColumns{VAF: "vaf"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if variants[0].VAF == nil || *variants[0].VAF != 0.25 {
		t.Fatalf("expected explicit vaf 0.25, got %+v", variants[0].VAF)
	}
}

func TestReadPeptides(t *testing.T) {
	path := writeTempCSV(t, "peptides.csv", "Mut_peptide,Mutation_ID\nRQAEITPTK,m1\nSILDNQLVR,m2\n")

	peptides, err := ReadPeptides(path, PeptideColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(peptides) != 2 {
		t.Fatalf("peptides = %d, want 2", len(peptides))
	}
	if peptides[1].Sequence != "SILDNQLVR" || peptides[1].Variant != "m2" {
		t.Fatalf("unexpected peptide: %+v", peptides[1])
	}
}

func TestReadPeptidesEmptySequence(t *testing.T) {
	path := writeTempCSV(t, "peptides.csv", "Mut_peptide,Mutation_ID\n,m1\n")
	if _, err := ReadPeptides(path, PeptideColumns{}); err == nil {
		t.Fatal("expected error for empty sequence")
	}
}

func TestReadAlleles(t *testing.T) {
	path := writeTempCSV(t, "hlas.csv", "allele_name,gene_id\nA0201,HLA-A\nC0701,HLA-C\n")

	alleles, err := ReadAlleles(path, AlleleColumns{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(alleles) != 2 || alleles[0].Name != "A0201" || alleles[0].Gene != "HLA-A" {
		t.Fatalf("unexpected alleles: %+v", alleles)
	}
}
