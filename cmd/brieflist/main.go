package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/brieflist/internal/apiclient"
	"github.com/alexanderramin/brieflist/internal/cli"
	"github.com/alexanderramin/brieflist/internal/config"
	"github.com/alexanderramin/brieflist/internal/db"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/llm"
	"github.com/alexanderramin/brieflist/internal/metrics"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Connect: connect}

	// Detect interactive terminal for prompts, spinners and the TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// connect wires the record store and company research for the selected
// mode. Remote mode routes both through a running server.
func connect(ctx context.Context, app *cli.App, mode cli.ConnectMode) (func(), error) {
	cfg := app.Config

	if mode == cli.ConnectRemote {
		client, err := apiclient.New(cfg.API.BaseURL, nil)
		if err != nil {
			return nil, err
		}
		app.Todos = client
		app.Company = client
		app.Logger.Debug("using remote server", zap.String("url", cfg.API.BaseURL))
		return func() {}, nil
	}

	app.Metrics = metrics.New()

	todos, database, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	app.Todos = todos
	cleanup := func() {
		if database != nil {
			database.Close()
		}
	}

	company, err := openCompany(ctx, cfg.LLM, app)
	if err != nil {
		cleanup()
		return nil, err
	}
	app.Company = company

	return cleanup, nil
}

// openStore opens the configured record store. The returned *sql.DB is nil
// for the REST driver.
func openStore(ctx context.Context, sc config.StoreConfig) (repository.TodoRepo, *sql.DB, error) {
	switch sc.Driver {
	case config.DriverPostgres:
		database, err := db.OpenPostgres(ctx, sc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		return repository.NewPostgresTodoRepo(database), database, nil
	case config.DriverREST:
		repo, err := repository.NewRESTTodoRepo(sc.URL, sc.Key, sc.Table, nil)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	default:
		database, err := db.OpenSQLite(sc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteTodoRepo(database), database, nil
	}
}

// openCompany builds the research service. Without a credential no client
// is created; lookups then fail with ErrConfiguration before any call.
func openCompany(ctx context.Context, lc llm.Config, app *cli.App) (intelligence.CompanyService, error) {
	var client llm.Client
	if lc.CredentialConfigured() {
		observers := llm.MultiObserver{app.Metrics}
		if lc.LogCalls {
			observers = append(observers, llm.NewLogObserver(app.Logger))
		}
		c, err := llm.New(ctx, lc, observers)
		if err != nil {
			return nil, err
		}
		client = c
	} else {
		app.Logger.Debug("no completion provider credential configured",
			zap.String("provider", string(lc.Provider)))
	}
	return intelligence.NewCompanyService(client, lc, app.Logger)
}
