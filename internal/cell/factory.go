package cell

import (
	"fmt"
	"math/rand"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/model"
	"neoagtwin/internal/sampling"
	"neoagtwin/internal/scores"
)

// Factory drives the full pipeline for one cell: genetics over every
// variant, cleavage of each expressed variant's peptides into one candidate
// pool, per-allele molecule abundance, the binding competition and the final
// presentation filter.
type Factory struct {
	Genetics     GeneticSimulator
	Cleaver      Cleaver
	Binding      BindingSimulator
	Presentation *scores.AlleleScores

	// ExpressionPseudocount is added to allele expression means before
	// sampling molecule abundance.
	ExpressionPseudocount float64
}

// NewFactory wires a factory from its score tables with default
// pseudocounts. Cleavage weights use the presentation table, matching the
// upstream pipeline's configuration.
func NewFactory(binding, presentation *scores.AlleleScores) Factory {
	return Factory{
		Genetics:              NewGeneticSimulator(),
		Cleaver:               Cleaver{Scores: presentation},
		Binding:               NewBindingSimulator(binding),
		Presentation:          presentation,
		ExpressionPseudocount: DefaultExpressionPseudocount,
	}
}

// CreateCell materializes one fully annotated cell from the catalog. An
// empty candidate pool (no variant reached the DNA, or every yield was zero)
// is a valid outcome: the later stages still run, produce no complexes, and
// the HLA counts are sampled regardless.
func (f Factory) CreateCell(rng *rand.Rand, cat *catalog.Catalog, name string) (model.Cell, error) {
	genetics, err := f.Genetics.SimulateAll(rng, cat)
	if err != nil {
		return model.Cell{}, err
	}

	var pool []model.Peptide
	for _, variantName := range cat.VariantNames() {
		result := genetics[variantName]
		if result.ProteinCount <= 0 {
			continue
		}
		selected, err := f.Cleaver.Cleave(rng, cat.VariantPeptides(variantName), cat.Alleles(), result.ProteinCount)
		if err != nil {
			return model.Cell{}, fmt.Errorf("variant %s: %w", variantName, err)
		}
		pool = append(pool, selected...)
	}

	hlaCounts, err := f.hlaCounts(rng, cat)
	if err != nil {
		return model.Cell{}, err
	}

	bound, err := f.Binding.Bound(rng, pool, hlaCounts)
	if err != nil {
		return model.Cell{}, err
	}

	presented := make([]model.PMHC, 0, len(bound))
	for _, pmhc := range bound {
		likelihood := f.Presentation.Score(pmhc.Allele, pmhc.Peptide)
		if sampling.Bernoulli(rng, likelihood) {
			presented = append(presented, pmhc)
		}
	}

	sequences := make([]string, len(pool))
	for i, pep := range pool {
		sequences[i] = pep.Sequence
	}

	return model.Cell{
		Name:             name,
		Genetics:         genetics,
		SelectedPeptides: sequences,
		HLACounts:        hlaCounts,
		Bound:            bound,
		Presented:        presented,
	}, nil
}

// hlaCounts samples the molecule abundance for each allele from the
// Gamma-Poisson mixture over the allele's own expression. Abundance is
// independent of the variant and peptide data.
func (f Factory) hlaCounts(rng *rand.Rand, cat *catalog.Catalog) (map[string]int, error) {
	counts := make(map[string]int, len(cat.Alleles()))
	for _, allele := range cat.Alleles() {
		protein, ok := cat.AlleleProtein(allele)
		if !ok {
			return nil, fmt.Errorf("allele %s has no expression source", allele.Name)
		}
		count, err := sampling.GammaPoisson(
			rng,
			protein.ExpressionMean+f.ExpressionPseudocount,
			protein.ExpressionVar,
		)
		if err != nil {
			return nil, fmt.Errorf("allele %s: %w", allele.Name, err)
		}
		counts[allele.Name] = count
	}
	return counts, nil
}
