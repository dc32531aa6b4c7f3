// Package population runs repeated cell simulations and flattens them into
// the tabular form the downstream vaccine optimization consumes.
package population

import (
	"fmt"
	"log/slog"
	"math/rand"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/cell"
	"neoagtwin/internal/model"
)

// repetitionSeedStride separates the derived seeds of consecutive
// repetitions, so each repetition carries its own reproducible stream and
// repetitions could run concurrently without sharing a generator.
const repetitionSeedStride = 1_000_003

// Setting describes one independent simulation setting from the config.
type Setting struct {
	Name                  string
	NumCells              int
	NumRepetitions        int
	ExpressionPseudocount float64
}

// Simulator produces populations of cells for one patient's catalogs.
type Simulator struct {
	Factory cell.Factory
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

// Run simulates NumRepetitions populations of NumCells cells each. The
// returned slice is indexed [repetition][cell]. Every repetition uses a seed
// derived from the base seed, so a fixed seed reproduces the whole run
// byte for byte.
func (s Simulator) Run(seed int64, setting Setting) ([][]model.Cell, error) {
	if setting.NumCells <= 0 {
		return nil, fmt.Errorf("simulation %s: num_cells must be positive", setting.Name)
	}
	if setting.NumRepetitions <= 0 {
		return nil, fmt.Errorf("simulation %s: num_repetitions must be positive", setting.Name)
	}

	factory := s.Factory
	if setting.ExpressionPseudocount > 0 {
		factory.ExpressionPseudocount = setting.ExpressionPseudocount
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("simulating cells",
		"simulation", setting.Name,
		"cells", setting.NumCells,
		"repetitions", setting.NumRepetitions,
	)

	populations := make([][]model.Cell, setting.NumRepetitions)
	for rep := range populations {
		rng := rand.New(rand.NewSource(seed + int64(rep)*repetitionSeedStride))
		cells := make([]model.Cell, setting.NumCells)
		for i := range cells {
			name := fmt.Sprintf("%s-r%d-c%d", setting.Name, rep, i)
			c, err := factory.CreateCell(rng, s.Catalog, name)
			if err != nil {
				return nil, fmt.Errorf("simulation %s repetition %d: %w", setting.Name, rep, err)
			}
			cells[i] = c
		}
		populations[rep] = cells
		logger.Debug("repetition complete", "simulation", setting.Name, "repetition", rep)
	}
	return populations, nil
}

// Flatten converts populations into presentation rows, one per presented
// peptide:MHC complex, joining each peptide back to its originating
// mutation through the catalog.
func Flatten(populations [][]model.Cell, cat *catalog.Catalog, simulation string) []model.PresentationRow {
	var rows []model.PresentationRow
	for rep, cells := range populations {
		for cellID, c := range cells {
			for _, pmhc := range c.Presented {
				rows = append(rows, model.PresentationRow{
					Repetition: rep,
					CellID:     cellID,
					Peptide:    pmhc.Peptide,
					Allele:     pmhc.Allele,
					Simulation: simulation,
					Mutation:   cat.VariantForSequence(pmhc.Peptide),
				})
			}
		}
	}
	return rows
}
