package catalog

import (
	"fmt"

	"neoagtwin/internal/model"
	"neoagtwin/internal/tabular"
)

// ProteinColumns names the columns of the gene expression file.
type ProteinColumns struct {
	Name string
	Mean string
	Var  string
}

// DefaultProteinColumns matches the conventional expression-file layout.
func DefaultProteinColumns() ProteinColumns {
	return ProteinColumns{Name: "gene_id", Mean: "FPKM", Var: "FPKM_VAR"}
}

// ReadProteins loads the gene expression file. Duplicate gene names keep
// their first row.
func ReadProteins(path string, columns ProteinColumns) ([]model.Protein, error) {
	d := DefaultProteinColumns()
	if columns.Name == "" {
		columns.Name = d.Name
	}
	if columns.Mean == "" {
		columns.Mean = d.Mean
	}
	if columns.Var == "" {
		columns.Var = d.Var
	}

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	proteins := make([]model.Protein, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		name, err := table.Field(row, columns.Name)
		if err != nil {
			return nil, err
		}
		mean, err := table.Float(row, columns.Mean)
		if err != nil {
			return nil, err
		}
		variance, err := table.Float(row, columns.Var)
		if err != nil {
			return nil, err
		}
		proteins = append(proteins, model.Protein{
			Name:           name,
			ExpressionMean: mean,
			ExpressionVar:  variance,
		})
	}
	return proteins, nil
}

// VariantColumns names the columns of the variant file. VAF is optional;
// when set, the explicit fraction in that column replaces the four read
// counts.
type VariantColumns struct {
	Name   string
	Gene   string
	DNARef string
	DNAAlt string
	RNARef string
	RNAAlt string
	VAF    string
}

// DefaultVariantColumns matches the conventional variant-file layout.
func DefaultVariantColumns() VariantColumns {
	return VariantColumns{
		Name:   "Mutation_ID",
		Gene:   "Gene_ID",
		DNARef: "WXS_tumor_depth_ref",
		DNAAlt: "WXS_tumor_depth_alt",
		RNARef: "RNA_tumor_depth_ref",
		RNAAlt: "RNA_tumor_depth_alt",
	}
}

// ReadVariants loads the somatic variant file.
func ReadVariants(path string, columns VariantColumns) ([]model.SomaticVariant, error) {
	d := DefaultVariantColumns()
	if columns.Name == "" {
		columns.Name = d.Name
	}
	if columns.Gene == "" {
		columns.Gene = d.Gene
	}
	if columns.DNARef == "" {
		columns.DNARef = d.DNARef
	}
	if columns.DNAAlt == "" {
		columns.DNAAlt = d.DNAAlt
	}
	if columns.RNARef == "" {
		columns.RNARef = d.RNARef
	}
	if columns.RNAAlt == "" {
		columns.RNAAlt = d.RNAAlt
	}

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	variants := make([]model.SomaticVariant, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		name, err := table.Field(row, columns.Name)
		if err != nil {
			return nil, err
		}
		gene, err := table.Field(row, columns.Gene)
		if err != nil {
			return nil, err
		}
		variant := model.SomaticVariant{Name: name, Gene: gene}

		if columns.VAF != "" {
			vaf, err := table.Float(row, columns.VAF)
			if err != nil {
				return nil, err
			}
			variant.VAF = &vaf
		} else {
			if variant.DNARefCount, err = table.Int(row, columns.DNARef); err != nil {
				return nil, err
			}
			if variant.DNAAltCount, err = table.Int(row, columns.DNAAlt); err != nil {
				return nil, err
			}
			if variant.RNARefCount, err = table.Int(row, columns.RNARef); err != nil {
				return nil, err
			}
			if variant.RNAAltCount, err = table.Int(row, columns.RNAAlt); err != nil {
				return nil, err
			}
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

// PeptideColumns names the columns of the peptide sequence file.
type PeptideColumns struct {
	Sequence string
	Variant  string
}

// DefaultPeptideColumns matches the conventional peptide-file layout.
func DefaultPeptideColumns() PeptideColumns {
	return PeptideColumns{Sequence: "Mut_peptide", Variant: "Mutation_ID"}
}

// ReadPeptides loads the peptide sequence file.
func ReadPeptides(path string, columns PeptideColumns) ([]model.Peptide, error) {
	d := DefaultPeptideColumns()
	if columns.Sequence == "" {
		columns.Sequence = d.Sequence
	}
	if columns.Variant == "" {
		columns.Variant = d.Variant
	}

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	peptides := make([]model.Peptide, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		sequence, err := table.Field(row, columns.Sequence)
		if err != nil {
			return nil, err
		}
		if sequence == "" {
			return nil, fmt.Errorf("empty peptide sequence at row %d", row)
		}
		variant, err := table.Field(row, columns.Variant)
		if err != nil {
			return nil, err
		}
		peptides = append(peptides, model.Peptide{Sequence: sequence, Variant: variant})
	}
	return peptides, nil
}

// AlleleColumns names the columns of the HLA allele file.
type AlleleColumns struct {
	Allele string
	Gene   string
}

// DefaultAlleleColumns matches the conventional HLA-file layout.
func DefaultAlleleColumns() AlleleColumns {
	return AlleleColumns{Allele: "allele_name", Gene: "gene_id"}
}

// ReadAlleles loads the HLA allele file.
func ReadAlleles(path string, columns AlleleColumns) ([]model.Allele, error) {
	d := DefaultAlleleColumns()
	if columns.Allele == "" {
		columns.Allele = d.Allele
	}
	if columns.Gene == "" {
		columns.Gene = d.Gene
	}

	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	alleles := make([]model.Allele, 0, table.Len())
	for row := 0; row < table.Len(); row++ {
		name, err := table.Field(row, columns.Allele)
		if err != nil {
			return nil, err
		}
		gene, err := table.Field(row, columns.Gene)
		if err != nil {
			return nil, err
		}
		alleles = append(alleles, model.Allele{Name: name, Gene: gene})
	}
	return alleles, nil
}
