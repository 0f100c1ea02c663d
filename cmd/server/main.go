package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/spaserve/internal/config"
	"github.com/playperu/spaserve/internal/handler/health"
	"github.com/playperu/spaserve/internal/server"
	"github.com/playperu/spaserve/internal/spa"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	files := spa.NewHandler(cfg.DocumentRoot, cfg.FallbackDocument, logger)

	var mount func(chi.Router)
	if cfg.HealthPath != "" {
		mount = func(r chi.Router) {
			r.Mount(cfg.HealthPath, health.NewHandler(logger, map[string]health.Checker{
				"document_root": health.DirChecker{Path: cfg.DocumentRoot},
				"fallback":      health.FileChecker{Path: filepath.Join(cfg.DocumentRoot, filepath.FromSlash(cfg.FallbackDocument))},
			}).Routes())
		}
	}

	srv := server.New(cfg.Addr(), logger, files, mount)
	if err := srv.Listen(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Serving HTTP on %s port %d ...\n", cfg.BindHost, cfg.BindPort)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server",
			"addr", srv.Addr().String(),
			"root", cfg.DocumentRoot,
			"fallback", cfg.FallbackDocument,
		)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
