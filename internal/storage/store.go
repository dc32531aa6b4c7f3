// Package storage persists simulation runs and their flattened presentation
// rows. A memory store backs tests and one-shot runs; a sqlite store,
// enabled with the sqlite build tag, keeps results across invocations.
package storage

import (
	"context"

	"neoagtwin/internal/model"
)

// Store defines the persistence operations for simulation output.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.SimulationRun) error
	GetRun(ctx context.Context, id string) (model.SimulationRun, bool, error)
	ListRuns(ctx context.Context) ([]model.SimulationRun, error)
	SaveRows(ctx context.Context, runID string, rows []model.PresentationRow) error
	GetRows(ctx context.Context, runID string) ([]model.PresentationRow, bool, error)
}
