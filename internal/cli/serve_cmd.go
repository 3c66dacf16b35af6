package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/brieflist/internal/httpapi"
	"github.com/alexanderramin/brieflist/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the HTTP API",
		Annotations: map[string]string{annotationLocalOnly: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return runServer(ctx, app, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	return cmd
}

// newHandler wires the HTTP API around the App's collaborators.
func newHandler(app *App) http.Handler {
	observers := service.MultiUseCaseObserver{service.NewLogUseCaseObserver(app.Logger)}
	if app.Metrics != nil {
		observers = append(observers, app.Metrics)
	}

	opts := httpapi.Options{Metrics: app.Metrics, Logger: app.Logger}
	if app.Todos != nil {
		opts.Todos = service.NewTodoService(app.Todos, observers)
	}
	if app.Company != nil {
		opts.Company = service.NewObservedCompanyService(app.Company, observers)
	}
	return httpapi.NewServer(opts)
}

// runServer serves on ln until ctx is done, then shuts down gracefully
// within the configured timeout.
func runServer(ctx context.Context, app *App, ln net.Listener) error {
	srv := &http.Server{
		Handler:           newHandler(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()
		app.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
