package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"neoagtwin/internal/catalog"
	"neoagtwin/internal/cell"
	"neoagtwin/internal/config"
	"neoagtwin/internal/model"
	"neoagtwin/internal/population"
	"neoagtwin/internal/scores"
	"neoagtwin/internal/storage"
)

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the simulation config (yaml)")
	seed := fs.Int64("seed", config.DefaultSeed, "random seed")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neoagtwin.db", "sqlite database path")
	logLevel := fs.String("log-level", "info", "log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return usageError("simulate: -config is required")
	}

	logger := newLogger(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger.Info("loading catalogs")
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	logger.Info("loading score tables")
	binding, cleavage, presentation, err := loadScores(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	factory := cell.NewFactory(binding, presentation)
	factory.Cleaver = cell.Cleaver{Scores: cleavage}
	simulator := population.Simulator{Factory: factory, Catalog: cat, Logger: logger}

	var allRows []model.PresentationRow
	for _, sim := range cfg.Simulations {
		populations, err := simulator.Run(*seed, sim.Setting())
		if err != nil {
			return err
		}
		rows := population.Flatten(populations, cat, sim.Name)
		logger.Info("simulation complete", "simulation", sim.Name, "presented_complexes", len(rows))

		runID := fmt.Sprintf("%s-seed%d", sim.Name, *seed)
		run := model.SimulationRun{
			ID:             runID,
			Simulation:     sim.Name,
			Seed:           *seed,
			NumCells:       sim.NumCells,
			NumRepetitions: sim.NumRepetitions,
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return err
		}
		if err := store.SaveRows(ctx, runID, rows); err != nil {
			return err
		}
		allRows = append(allRows, rows...)
	}

	logger.Info("writing cells table", "path", cfg.Output, "rows", len(allRows))
	return storage.WriteCSVFile(cfg.Output, allRows)
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	proteins, err := catalog.ReadProteins(cfg.Genes.Path, cfg.Genes.Columns())
	if err != nil {
		return nil, err
	}
	variants, err := catalog.ReadVariants(cfg.Variants.Path, cfg.Variants.Columns())
	if err != nil {
		return nil, err
	}
	peptides, err := catalog.ReadPeptides(cfg.Peptides.Path, cfg.Peptides.Columns())
	if err != nil {
		return nil, err
	}
	alleles, err := catalog.ReadAlleles(cfg.HLAs.Path, cfg.HLAs.Columns())
	if err != nil {
		return nil, err
	}
	return catalog.Build(proteins, variants, peptides, alleles, catalog.Options{
		DefaultExpressionVar: cfg.Genes.DefaultVar,
	})
}

func loadScores(cfg *config.Config) (binding, cleavage, presentation *scores.AlleleScores, err error) {
	binding, err = scores.ReadAlleleScores(cfg.Binding.Path, "binding_scores", cfg.Binding.Columns())
	if err != nil {
		return nil, nil, nil, err
	}
	presentation, err = scores.ReadAlleleScores(cfg.Presentatn.Path, "presentation_scores", cfg.Presentatn.Columns())
	if err != nil {
		return nil, nil, nil, err
	}
	// cleavage propensity defaults to the presentation table when no
	// dedicated file is configured
	cleavage = presentation
	if cfg.Cleavage.Path != "" {
		cleavage, err = scores.ReadAlleleScores(cfg.Cleavage.Path, "cleavage_scores", cfg.Cleavage.Columns())
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return binding, cleavage, presentation, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
