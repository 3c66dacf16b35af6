package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/brieflist/internal/config"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/logging"
	"github.com/alexanderramin/brieflist/internal/metrics"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConnectMode tells Connect whether commands may use a remote server.
type ConnectMode int

const (
	// ConnectLocal opens the record store and completion client in-process.
	ConnectLocal ConnectMode = iota
	// ConnectRemote talks to the server at Config.API.BaseURL.
	ConnectRemote
)

// Command annotations read by setup.
const (
	// annotationLocalOnly marks commands that always run in-process.
	annotationLocalOnly = "brieflist/local-only"
	// annotationNoConnect marks commands that need configuration only.
	annotationNoConnect = "brieflist/no-connect"
)

// App holds the collaborators used by the commands. main supplies Connect,
// which fills Todos, Company and Metrics once flags and configuration are
// known. Tests set the collaborators directly and leave Connect nil.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Todos   repository.TodoRepo
	Company intelligence.CompanyService
	Metrics *metrics.Metrics

	Connect func(ctx context.Context, app *App, mode ConnectMode) (cleanup func(), err error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now is the clock used for relative dates.
	Now func() time.Time

	configPath string
	remote     string
	logLevel   string
	cleanup    func()
}

// NewRootCmd creates the top-level "brieflist" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "brieflist",
		Short:         "Todo list and company research assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", config.PathFromEnv(), "Path to the YAML config file")
	flags.StringVar(&app.remote, "remote", "", "Base URL of a running brieflist server (overrides api.base_url)")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(app),
		newTodoCmd(app),
		newResearchCmd(app),
		newExportCmd(app),
		newTUICmd(app),
		newConfigCmd(app),
	)

	return root
}

// setup loads configuration, builds the logger and connects collaborators.
// Values already present on App are kept.
func (app *App) setup(cmd *cobra.Command) error {
	if app.Config == nil {
		cfg, err := config.Load(app.configPath)
		if err != nil {
			return err
		}
		app.Config = cfg
	}
	if app.remote != "" {
		app.Config.API.BaseURL = app.remote
	}
	if app.logLevel != "" {
		app.Config.Logging.Level = app.logLevel
	}

	if app.Logger == nil {
		logger, err := logging.New(app.Config.Logging.Level, logging.Format(app.Config.Logging.Format))
		if err != nil {
			return err
		}
		app.Logger = logger
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.IsInteractive == nil {
		app.IsInteractive = func() bool { return false }
	}

	if app.Connect == nil || cmd.Annotations[annotationNoConnect] == "true" {
		return nil
	}
	mode := ConnectLocal
	if app.Config.API.BaseURL != "" && cmd.Annotations[annotationLocalOnly] != "true" {
		mode = ConnectRemote
	}
	cleanup, err := app.Connect(cmd.Context(), app, mode)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	app.cleanup = cleanup
	return nil
}

// Close releases whatever Connect opened and flushes the logger. It is
// safe to call more than once.
func (app *App) Close() {
	if app.cleanup != nil {
		app.cleanup()
		app.cleanup = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}

func (app *App) requireTodos() error {
	if app.Todos == nil {
		return fmt.Errorf("todo store is not configured")
	}
	return nil
}

func (app *App) requireCompany() error {
	if app.Company == nil {
		return fmt.Errorf("company research is not configured")
	}
	return nil
}
