// Package config loads the YAML file that drives a simulation run: where
// the catalog and score files live, how their columns are named, where the
// flattened output goes, and the list of simulation settings to run.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/population"
	"neoagtwin/internal/scores"
)

// DefaultSeed matches the conventional seed of the upstream pipeline.
const DefaultSeed = 42

// Config is the full simulation configuration.
type Config struct {
	Genes       GeneFile     `yaml:"genes"`
	Variants    VariantFile  `yaml:"variants"`
	Peptides    PeptideFile  `yaml:"peptides"`
	HLAs        HLAFile      `yaml:"hlas"`
	Binding     ScoreFile    `yaml:"binding_scores"`
	Cleavage    ScoreFile    `yaml:"cleavage_scores"`
	Presentatn  ScoreFile    `yaml:"presentation_scores"`
	Output      string       `yaml:"cells_out"`
	Simulations []Simulation `yaml:"simulations"`
}

// GeneFile locates the gene expression catalog.
type GeneFile struct {
	Path       string  `yaml:"path"`
	NameColumn string  `yaml:"name_column"`
	MeanColumn string  `yaml:"mean_column"`
	VarColumn  string  `yaml:"var_column"`
	DefaultVar float64 `yaml:"default_var"`
}

// Columns maps the file entry onto the catalog reader's column names.
func (f GeneFile) Columns() catalog.ProteinColumns {
	return catalog.ProteinColumns{Name: f.NameColumn, Mean: f.MeanColumn, Var: f.VarColumn}
}

// VariantFile locates the somatic variant catalog. When VAFColumn is set,
// the explicit fraction replaces the four read-count columns.
type VariantFile struct {
	Path         string `yaml:"path"`
	NameColumn   string `yaml:"name_column"`
	GeneColumn   string `yaml:"gene_column"`
	DNARefColumn string `yaml:"dna_ref_column"`
	DNAAltColumn string `yaml:"dna_alt_column"`
	RNARefColumn string `yaml:"rna_ref_column"`
	RNAAltColumn string `yaml:"rna_alt_column"`
	VAFColumn    string `yaml:"vaf_column"`
}

func (f VariantFile) Columns() catalog.VariantColumns {
	return catalog.VariantColumns{
		Name:   f.NameColumn,
		Gene:   f.GeneColumn,
		DNARef: f.DNARefColumn,
		DNAAlt: f.DNAAltColumn,
		RNARef: f.RNARefColumn,
		RNAAlt: f.RNAAltColumn,
		VAF:    f.VAFColumn,
	}
}

// PeptideFile locates the peptide sequence catalog.
type PeptideFile struct {
	Path           string `yaml:"path"`
	SequenceColumn string `yaml:"sequence_column"`
	VariantColumn  string `yaml:"variant_column"`
}

func (f PeptideFile) Columns() catalog.PeptideColumns {
	return catalog.PeptideColumns{Sequence: f.SequenceColumn, Variant: f.VariantColumn}
}

// HLAFile locates the MHC allele catalog.
type HLAFile struct {
	Path         string `yaml:"path"`
	AlleleColumn string `yaml:"allele_column"`
	GeneColumn   string `yaml:"gene_column"`
}

func (f HLAFile) Columns() catalog.AlleleColumns {
	return catalog.AlleleColumns{Allele: f.AlleleColumn, Gene: f.GeneColumn}
}

// ScoreFile locates one allele-scoped score table.
type ScoreFile struct {
	Path          string `yaml:"path"`
	AlleleColumn  string `yaml:"allele_column"`
	PeptideColumn string `yaml:"peptide_column"`
	ScoreColumn   string `yaml:"score_column"`
}

func (f ScoreFile) Columns() scores.AlleleColumns {
	return scores.AlleleColumns{Allele: f.AlleleColumn, Peptide: f.PeptideColumn, Score: f.ScoreColumn}
}

// Simulation is one independent simulation setting.
type Simulation struct {
	Name                  string  `yaml:"name"`
	NumCells              int     `yaml:"num_cells"`
	NumRepetitions        int     `yaml:"num_repetitions"`
	ExpressionPseudocount float64 `yaml:"expression_pseudocount"`
}

// Setting converts the config entry into a population setting.
func (s Simulation) Setting() population.Setting {
	return population.Setting{
		Name:                  s.Name,
		NumCells:              s.NumCells,
		NumRepetitions:        s.NumRepetitions,
		ExpressionPseudocount: s.ExpressionPseudocount,
	}
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration content.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required fields. The cleavage table may share the
// presentation table's file; only its path may be empty, in which case the
// presentation scores are reused, matching the upstream pipeline.
func (c *Config) Validate() error {
	required := []struct {
		name string
		path string
	}{
		{"genes.path", c.Genes.Path},
		{"variants.path", c.Variants.Path},
		{"peptides.path", c.Peptides.Path},
		{"hlas.path", c.HLAs.Path},
		{"binding_scores.path", c.Binding.Path},
		{"presentation_scores.path", c.Presentatn.Path},
	}
	for _, field := range required {
		if field.path == "" {
			return fmt.Errorf("config: %s is required", field.name)
		}
	}
	if c.Output == "" {
		return errors.New("config: cells_out is required")
	}
	if len(c.Simulations) == 0 {
		return errors.New("config: at least one simulation is required")
	}
	for i, sim := range c.Simulations {
		if sim.Name == "" {
			return fmt.Errorf("config: simulations[%d]: name is required", i)
		}
		if sim.NumCells <= 0 {
			return fmt.Errorf("config: simulation %s: num_cells must be positive", sim.Name)
		}
		if sim.NumRepetitions <= 0 {
			return fmt.Errorf("config: simulation %s: num_repetitions must be positive", sim.Name)
		}
	}
	return nil
}
