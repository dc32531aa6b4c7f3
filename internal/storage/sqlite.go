//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"neoagtwin/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			simulation TEXT NOT NULL,
			seed INTEGER NOT NULL,
			num_cells INTEGER NOT NULL,
			num_repetitions INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS presentation_rows (
			run_id TEXT NOT NULL,
			repetition INTEGER NOT NULL,
			cell_id INTEGER NOT NULL,
			peptide TEXT NOT NULL,
			allele TEXT NOT NULL,
			simulation TEXT NOT NULL,
			mutation TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_presentation_rows_run
			ON presentation_rows (run_id);
	`)
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run model.SimulationRun) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, simulation, seed, num_cells, num_repetitions)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			simulation = excluded.simulation,
			seed = excluded.seed,
			num_cells = excluded.num_cells,
			num_repetitions = excluded.num_repetitions
	`, run.ID, run.Simulation, run.Seed, run.NumCells, run.NumRepetitions)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (model.SimulationRun, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SimulationRun{}, false, err
	}

	var run model.SimulationRun
	err = db.QueryRowContext(ctx, `
		SELECT id, simulation, seed, num_cells, num_repetitions
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Simulation, &run.Seed, &run.NumCells, &run.NumRepetitions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SimulationRun{}, false, nil
		}
		return model.SimulationRun{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]model.SimulationRun, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, simulation, seed, num_cells, num_repetitions
		FROM runs ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.SimulationRun
	for rows.Next() {
		var run model.SimulationRun
		if err := rows.Scan(&run.ID, &run.Simulation, &run.Seed, &run.NumCells, &run.NumRepetitions); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) SaveRows(ctx context.Context, runID string, presentationRows []model.PresentationRow) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presentation_rows WHERE run_id = ?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO presentation_rows
			(run_id, repetition, cell_id, peptide, allele, simulation, mutation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range presentationRows {
		if _, err := stmt.ExecContext(ctx, runID, row.Repetition, row.CellID, row.Peptide, row.Allele, row.Simulation, row.Mutation); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetRows(ctx context.Context, runID string) ([]model.PresentationRow, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT repetition, cell_id, peptide, allele, simulation, mutation
		FROM presentation_rows WHERE run_id = ?
		ORDER BY repetition, cell_id, rowid
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.PresentationRow
	for rows.Next() {
		var row model.PresentationRow
		if err := rows.Scan(&row.Repetition, &row.CellID, &row.Peptide, &row.Allele, &row.Simulation, &row.Mutation); err != nil {
			return nil, false, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out, true, nil
}
