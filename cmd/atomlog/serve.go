// File: cmd/atomlog/serve.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/capture"
	"github.com/momentics/atomlog/diagnostics"
	"github.com/momentics/atomlog/drain"
	"github.com/momentics/atomlog/facade"
	"github.com/momentics/atomlog/internal/config"
	"github.com/momentics/atomlog/internal/logging"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the drainer and the diagnostics HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr, _ := cmd.Flags().GetString("http"); addr != "" {
				cfg.App.HTTPAddr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("http", "", "HTTP listen address (overrides ATOMLOG_HTTP_ADDR)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := logging.New(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Sync(base)

	store := atomlog.Default()
	// Sinks use the plain logger so drained records are not pushed back into the store.
	sinks, err := drain.NamedSinks(cfg.Drain.Sinks, base)
	if err != nil {
		return err
	}
	// Service warnings and errors are mirrored into the store.
	logger := capture.Tee(base, store, zapcore.WarnLevel)
	defer capture.Guard(store)

	rec, err := facade.New(&facade.Config{
		Store:         store,
		DrainInterval: cfg.Drain.Interval,
		MaxBacklog:    cfg.Drain.MaxBacklog,
		Sinks:         sinks,
		Logger:        logger,
		EnableMetrics: cfg.Diagnostics.Metrics,
	})
	if err != nil {
		return err
	}
	if err := rec.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := rec.Shutdown(); err != nil {
			base.Warn("final drain failed", zap.Error(err))
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go watchReload(ctx, hup, rec.GetControl(), logger)

	router := diagnostics.NewRouter(rec.DiagnosticsHandler(), cfg.Diagnostics.DebugEndpoints, cfg.App.Env == "production")
	server := &diagnostics.Server{Engine: router, Addr: cfg.App.HTTPAddr, Logger: logger}
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
