package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/clockwork/internal/cli"
	"github.com/alexanderramin/clockwork/internal/config"
	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/repository"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case events stay silent until --verbose or CLOCKWORK_LOG lowers
	// the level.
	level := new(slog.LevelVar)
	level.Set(cli.QuietLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := service.NewSlogUseCaseObserver(logger)

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Clock:    service.NewClockService(sessionRepo, uow, nil, observer),
		Reports:  service.NewReportService(sessionRepo, observer),
		Config:   cfg,
		DBPath:   cfg.Database.Path,
		LogLevel: level,
	}

	// Prompts and the dashboard need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
