package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/tally/internal/cli"
	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/intelligence"
	"github.com/alexanderramin/tally/internal/llm"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tally/tally.db
	dbPath := os.Getenv("TALLY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tally", "tally.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	costRepo := repository.NewSQLiteCostEntryRepo(database)
	alertRepo := repository.NewSQLiteScopeAlertRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	clock := service.TimeContext{TimezoneOverride: os.Getenv("TALLY_TZ")}

	var observers []service.UseCaseObserver
	if enabled, _ := strconv.ParseBool(os.Getenv("TALLY_LOG")); enabled {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// The parser is wired only when the LLM is enabled; otherwise `log`
	// accepts --from-json only.
	var parser intelligence.EntryParser
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		parser = intelligence.NewEntryParser(llm.NewOllamaClient(llmCfg, observer))
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		Entries:  service.NewEntryService(projectRepo, entryRepo, profileRepo, uow, parser, clock, observers...),
		Costs:    service.NewCostService(projectRepo, costRepo),
		Health:   service.NewHealthService(alertRepo, uow, clock, observers...),
		Review:   service.NewReviewService(entryRepo, profileRepo, clock, observers...),
		Profile:  service.NewProfileService(profileRepo, projectRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
