// Package catalog assembles the immutable input catalogs the simulation
// reads from: proteins, somatic variants, peptides and MHC alleles. The
// catalog is built in one explicit pass and indexed up front; nothing in it
// changes after Build returns, so it is safe to share across simulations.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"neoagtwin/internal/model"
)

var ErrUnknownGene = errors.New("unknown gene")

// Options control catalog construction.
type Options struct {
	// DefaultExpressionVar replaces non-positive expression variances.
	// Expression cannot have a non-positive variance for sampling, so the
	// correction happens here, at construction, never at simulation time.
	// Zero means 1.
	DefaultExpressionVar float64
}

// Catalog is the read-only input universe for one patient.
type Catalog struct {
	proteins  map[string]model.Protein
	variants  map[string]model.SomaticVariant
	alleles   []model.Allele
	peptides  []model.Peptide
	byVariant map[string][]int
	bySeq     map[string]string

	variantNames []string
}

// Build validates and indexes the catalogs. Variants without any peptide and
// peptides whose variant is absent are dropped, mirroring the intersection
// the upstream pipeline performs; peptides with no variant reference are
// kept. Variant and allele gene links must resolve to a protein record.
func Build(
	proteins []model.Protein,
	variants []model.SomaticVariant,
	peptides []model.Peptide,
	alleles []model.Allele,
	opts Options,
) (*Catalog, error) {
	defaultVar := opts.DefaultExpressionVar
	if defaultVar <= 0 {
		defaultVar = 1
	}

	proteinMap := make(map[string]model.Protein, len(proteins))
	for _, p := range proteins {
		if _, ok := proteinMap[p.Name]; ok {
			continue
		}
		if p.ExpressionVar <= 0 {
			p.ExpressionVar = defaultVar
		}
		proteinMap[p.Name] = p
	}

	variantMap := make(map[string]model.SomaticVariant, len(variants))
	for _, v := range variants {
		if v.Name == "" {
			return nil, fmt.Errorf("variant with empty name")
		}
		if _, ok := proteinMap[v.Gene]; !ok {
			return nil, fmt.Errorf("variant %s: %w: %s", v.Name, ErrUnknownGene, v.Gene)
		}
		variantMap[v.Name] = v
	}

	// keep only peptides whose variant survived, and only variants with
	// at least one peptide
	kept := make([]model.Peptide, 0, len(peptides))
	byVariant := make(map[string][]int)
	bySeq := make(map[string]string, len(peptides))
	for _, pep := range peptides {
		if pep.Variant != "" {
			if _, ok := variantMap[pep.Variant]; !ok {
				continue
			}
			byVariant[pep.Variant] = append(byVariant[pep.Variant], len(kept))
			bySeq[pep.Sequence] = pep.Variant
		}
		kept = append(kept, pep)
	}
	for name := range variantMap {
		if len(byVariant[name]) == 0 {
			delete(variantMap, name)
		}
	}

	for _, a := range alleles {
		if _, ok := proteinMap[a.Gene]; !ok {
			return nil, fmt.Errorf("allele %s: %w: %s", a.Name, ErrUnknownGene, a.Gene)
		}
	}

	names := make([]string, 0, len(variantMap))
	for name := range variantMap {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{
		proteins:     proteinMap,
		variants:     variantMap,
		alleles:      append([]model.Allele(nil), alleles...),
		peptides:     kept,
		byVariant:    byVariant,
		bySeq:        bySeq,
		variantNames: names,
	}, nil
}

// Protein returns the protein record for name.
func (c *Catalog) Protein(name string) (model.Protein, bool) {
	p, ok := c.proteins[name]
	return p, ok
}

// Variant returns the variant record for name.
func (c *Catalog) Variant(name string) (model.SomaticVariant, bool) {
	v, ok := c.variants[name]
	return v, ok
}

// VariantNames returns the surviving variant names in sorted order. The
// order is the iteration order used throughout the simulation, which keeps
// seeded runs deterministic.
func (c *Catalog) VariantNames() []string {
	return c.variantNames
}

// VariantProtein returns the expression source for the named variant.
func (c *Catalog) VariantProtein(name string) (model.Protein, bool) {
	v, ok := c.variants[name]
	if !ok {
		return model.Protein{}, false
	}
	return c.Protein(v.Gene)
}

// Alleles returns the MHC alleles in their input order.
func (c *Catalog) Alleles() []model.Allele {
	return c.alleles
}

// AlleleProtein returns the expression source for the given allele.
func (c *Catalog) AlleleProtein(a model.Allele) (model.Protein, bool) {
	return c.Protein(a.Gene)
}

// VariantPeptides returns the peptides derived from the named variant.
func (c *Catalog) VariantPeptides(name string) []model.Peptide {
	indices := c.byVariant[name]
	peptides := make([]model.Peptide, len(indices))
	for i, idx := range indices {
		peptides[i] = c.peptides[idx]
	}
	return peptides
}

// VariantForSequence returns the name of the variant a peptide sequence
// derives from, or "" when the sequence is not tied to a mutation.
func (c *Catalog) VariantForSequence(sequence string) string {
	return c.bySeq[sequence]
}

// Peptides returns every peptide in the catalog.
func (c *Catalog) Peptides() []model.Peptide {
	return c.peptides
}

// NumVariants returns the number of surviving variants.
func (c *Catalog) NumVariants() int { return len(c.variants) }
