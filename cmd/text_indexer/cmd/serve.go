package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-text-indexer/api"
	"github.com/gcbaptista/go-text-indexer/config"
	"github.com/gcbaptista/go-text-indexer/internal/engine"
	"github.com/gcbaptista/go-text-indexer/internal/loader"
	"github.com/gcbaptista/go-text-indexer/internal/logger"
	"github.com/gcbaptista/go-text-indexer/internal/metrics"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Index the documents directory and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}
			logger.Setup(settings.Logging.Level, settings.Logging.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, settings)
		},
	}

	cmd.Flags().Int("port", 0, "Port to run the server on")

	return cmd
}

// newRouter builds the gin engine serving eng.
func newRouter(settings config.Settings, eng *engine.Engine, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	opts := api.RouterOptions{
		MaxRequestBytes: settings.Server.MaxRequestBytes,
		RateLimit:       settings.Server.RateLimit,
		RateBurst:       settings.Server.RateBurst,
	}
	if settings.Metrics.Enabled {
		opts.Metrics = m
		opts.MetricsPath = settings.Metrics.Path
	}
	api.SetupRoutes(router, eng, opts)
	return router
}

func runServe(ctx context.Context, settings config.Settings) error {
	if settings.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	eng, err := engine.NewEngine(settings.Index, engine.WithMetrics(m))
	if err != nil {
		return err
	}

	result, err := loader.LoadDirectory(ctx, settings.Index.DocumentsDir, loader.Options{Extensions: settings.Index.Extensions}, eng)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	stats := eng.Statistics()
	slog.Info("index ready",
		"documents", len(result.Documents),
		"terms", stats.TotalTerms,
		"btree_height", stats.BTreeHeight,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Server.Port),
		Handler:      newRouter(settings, eng, m),
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("text indexer listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("text indexer stopped with error", "error", err)
		return err
	}
	slog.Info("text indexer stopped")
	return nil
}
