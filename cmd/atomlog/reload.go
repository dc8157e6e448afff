// File: cmd/atomlog/reload.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/drain"
	"github.com/momentics/atomlog/internal/config"
)

// watchReload re-reads the configuration on every signal from sigs and pushes
// the runtime-tunable values into ctrl, until ctx is done.
func watchReload(ctx context.Context, sigs <-chan os.Signal, ctrl api.Control, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			if err := reloadConfig(ctrl); err != nil {
				logger.Warn("config reload failed", zap.Stringer("signal", sig), zap.Error(err))
				continue
			}
			logger.Info("config reloaded", zap.Stringer("signal", sig))
		}
	}
}

func reloadConfig(ctrl api.Control) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return ctrl.SetConfig(map[string]any{
		drain.KeyInterval: cfg.Drain.Interval,
	})
}
