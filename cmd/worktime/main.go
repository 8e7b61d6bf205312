package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli"
	"github.com/bside-ms/bside-nexus-sub000/internal/config"
	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/repository"
	"github.com/bside-ms/bside-nexus-sub000/internal/service"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("WORKTIME_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("WORKTIME_DEBUG") != "" {
		logger = logger.Level(zerolog.DebugLevel)
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	entryRepo := repository.NewSQLiteEntryRepo(database)
	recordRepo := repository.NewSQLiteDailyRecordRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	seg := worktime.NewSegmenter(loc)
	policy := worktime.Policy{FutureGrace: cfg.FutureGrace(), PastGrace: cfg.PastGrace()}

	app := &cli.App{
		Entries:     service.NewEntryService(entryRepo, seg, policy, uow, observer, nil),
		Aggregation: service.NewAggregationService(seg, uow, recordRepo, logger, observer),
		Import:      service.NewImportService(seg, uow, logger),
		Config:      cfg,
		Location:    loc,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
