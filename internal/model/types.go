package model

// Protein is an expression source. In practice these records are usually
// transcripts or genes, since RNA-seq is the common way expression is
// actually measured; "protein" names what the expression stands in for.
type Protein struct {
	Name           string  `json:"name"`
	ExpressionMean float64 `json:"expression_mean"`
	ExpressionVar  float64 `json:"expression_var"`
}

// SomaticVariant identifies one somatic mutation and the sequencing evidence
// for it. Either VAF is set explicitly or it is derived from the four read
// counts. Gene links the variant to its expression source.
type SomaticVariant struct {
	Name        string   `json:"name"`
	Gene        string   `json:"gene"`
	DNARefCount int      `json:"dna_ref_count"`
	DNAAltCount int      `json:"dna_alt_count"`
	RNARefCount int      `json:"rna_ref_count"`
	RNAAltCount int      `json:"rna_alt_count"`
	VAF         *float64 `json:"vaf,omitempty"`
}

// DNAVAF returns the DNA variant allele fraction: the explicit VAF when set,
// otherwise alt/(ref+alt), defined as 0 at zero depth.
func (v SomaticVariant) DNAVAF() float64 {
	if v.VAF != nil {
		return *v.VAF
	}
	depth := v.DNARefCount + v.DNAAltCount
	if depth == 0 {
		return 0
	}
	return float64(v.DNAAltCount) / float64(depth)
}

// RNAVAF returns the RNA variant allele fraction, with the same rules as
// DNAVAF.
func (v SomaticVariant) RNAVAF() float64 {
	if v.VAF != nil {
		return *v.VAF
	}
	depth := v.RNARefCount + v.RNAAltCount
	if depth == 0 {
		return 0
	}
	return float64(v.RNAAltCount) / float64(depth)
}

// Allele is an MHC allele. Gene names the protein record whose expression
// governs how many molecules of this allele a cell carries, not the antigen
// expression.
type Allele struct {
	Name string `json:"name"`
	Gene string `json:"gene"`
}

// Peptide is an amino-acid sequence, optionally tied to the variant it
// derives from. Variant is empty for peptides not caused by a mutation.
type Peptide struct {
	Sequence string `json:"sequence"`
	Variant  string `json:"variant,omitempty"`
}

// PMHC is a peptide bound to a specific MHC allele. The same type represents
// both bound and presented complexes; a presented complex is always one of
// the cell's bound complexes.
type PMHC struct {
	Peptide string `json:"peptide"`
	Allele  string `json:"allele"`
}

// GeneticResult is the outcome of the genetic simulation for one variant.
// ProteinCount is always 0 when the variant did not reach the DNA.
type GeneticResult struct {
	InDNA        bool `json:"in_dna"`
	ProteinCount int  `json:"protein_count"`
}

// Cell is one fully simulated cancer cell. All fields are written once by
// the cell factory and never mutated afterwards.
type Cell struct {
	Name             string                   `json:"name"`
	Genetics         map[string]GeneticResult `json:"genetics"`
	SelectedPeptides []string                 `json:"selected_peptides"`
	HLACounts        map[string]int           `json:"hla_counts"`
	Bound            []PMHC                   `json:"bound"`
	Presented        []PMHC                   `json:"presented"`
}

// PresentedSequences returns the distinct peptide sequences on the cell
// surface.
func (c Cell) PresentedSequences() []string {
	seen := make(map[string]struct{}, len(c.Presented))
	sequences := make([]string, 0, len(c.Presented))
	for _, pmhc := range c.Presented {
		if _, ok := seen[pmhc.Peptide]; ok {
			continue
		}
		seen[pmhc.Peptide] = struct{}{}
		sequences = append(sequences, pmhc.Peptide)
	}
	return sequences
}

// PresentationRow is one row of the flattened population table consumed by
// the downstream vaccine optimization: one presented peptide:MHC complex on
// one cell in one repetition.
type PresentationRow struct {
	Repetition int    `json:"repetition"`
	CellID     int    `json:"cell_id"`
	Peptide    string `json:"peptide"`
	Allele     string `json:"allele"`
	Simulation string `json:"simulation"`
	Mutation   string `json:"mutation"`
}

// SimulationRun records one invocation of the population simulator, so that
// stored presentation rows can be traced back to their seed and settings.
type SimulationRun struct {
	ID             string `json:"id"`
	Simulation     string `json:"simulation"`
	Seed           int64  `json:"seed"`
	NumCells       int    `json:"num_cells"`
	NumRepetitions int    `json:"num_repetitions"`
}
