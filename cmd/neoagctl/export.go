package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"neoagtwin/internal/storage"
)

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neoagtwin.db", "sqlite database path")
	runID := fs.String("run", "", "run id to export")
	out := fs.String("out", "", "output csv path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export: -run is required")
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	rows, ok, err := store.GetRows(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no rows stored for run %s", *runID)
	}

	if *out == "" {
		return storage.WriteCSV(os.Stdout, rows)
	}
	return storage.WriteCSVFile(*out, rows)
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neoagtwin.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Printf("%s\tsimulation=%s seed=%d cells=%d repetitions=%d\n",
			run.ID, run.Simulation, run.Seed, run.NumCells, run.NumRepetitions)
	}
	return nil
}
