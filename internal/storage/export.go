package storage

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"neoagtwin/internal/model"
)

// csvHeader is the column contract the downstream vaccine optimization
// reads; changing it breaks that interface.
var csvHeader = []string{"repetition", "cell_ids", "presented_peptides", "presented_hlas", "simulation_name", "mutation"}

// WriteCSV writes presentation rows in the tabular form consumed by the
// downstream subsystems.
func WriteCSV(w io.Writer, rows []model.PresentationRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Repetition),
			strconv.Itoa(row.CellID),
			row.Peptide,
			row.Allele,
			row.Simulation,
			row.Mutation,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes presentation rows to path, creating parent
// directories as needed.
func WriteCSVFile(path string, rows []model.PresentationRow) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
