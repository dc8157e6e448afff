// File: facade/recorder.go
// Unified facade layer for atomlog.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Recorder aggregates the store, control, drainer and metrics behind a single
// handle. The store itself needs no lifecycle; Start and Stop govern only the
// background drainer.

package facade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/atomlog/adapters"
	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/diagnostics"
	"github.com/momentics/atomlog/drain"
	"github.com/momentics/atomlog/internal/logging"
	"github.com/momentics/atomlog/metrics"
)

// Config holds parameters immutable per run.
// DrainInterval may later be changed through Control ("drain.interval").
type Config struct {
	Store         *atomlog.Store // Store to serve; nil selects atomlog.Default()
	DrainInterval time.Duration  // Period of background drains
	MaxBacklog    int            // Undelivered records kept for retry
	Sinks         []api.Sink     // Drain destinations, in emit order
	Logger        *zap.Logger    // Component logger; nil disables logging
	EnableMetrics bool           // Whether to build the prometheus registry
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		DrainInterval: time.Second,
		MaxBacklog:    4096,
		EnableMetrics: true,
	}
}

// Recorder is the main facade type.
type Recorder struct {
	config   *Config
	store    *atomlog.Store
	control  api.Control
	drainer  *drain.Drainer
	registry *prometheus.Registry
	logger   *zap.Logger

	mu      sync.Mutex // protects started, cancel, done
	started bool
	cancel  context.CancelFunc
	done    chan error
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Recorder)(nil)

// New wires the recorder components. Without sinks the drainer still
// empties the store on every tick and the records are discarded.
func New(cfg *Config) (*Recorder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.DrainInterval <= 0 || cfg.MaxBacklog <= 0 {
		return nil, fmt.Errorf("facade config: %w", api.ErrInvalidArgument)
	}
	r := &Recorder{
		config: cfg,
		store:  cfg.Store,
		logger: logging.WithComponent(cfg.Logger, "recorder"),
	}
	if r.store == nil {
		r.store = atomlog.Default()
	}

	r.control = adapters.NewStoreControl(r.store)
	r.drainer = drain.New(r.store, drain.Options{
		Interval:   cfg.DrainInterval,
		MaxBacklog: cfg.MaxBacklog,
		Sinks:      cfg.Sinks,
		Logger:     cfg.Logger,
		Control:    r.control,
	})
	if cfg.EnableMetrics {
		r.registry = metrics.NewRegistry(metrics.NewCollector(r.store, r.drainer))
	}

	// Expose configuration values via Control for observability and hot-reload.
	if err := r.control.SetConfig(map[string]any{
		drain.KeyInterval:   cfg.DrainInterval,
		"drain.max_backlog": cfg.MaxBacklog,
		"drain.sinks":       len(cfg.Sinks),
		"metrics.enabled":   cfg.EnableMetrics,
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// Start launches the background drainer. Subsequent calls have no effect.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan error, 1)
	go func() {
		r.done <- r.drainer.Run(runCtx)
	}()
	r.started = true
	r.logger.Info("recorder started", zap.Int("capacity", atomlog.MaxRecords), zap.Int("slot_size", atomlog.SlotSize))
	return nil
}

// Stop cancels the drainer and waits for its final drain. Calling Stop on a
// non-started recorder is a no-op.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	r.cancel()
	err := <-r.done
	r.started = false
	r.logger.Info("recorder stopped", zap.Error(err))
	return err
}

// Shutdown implements api.GracefulShutdown by delegating to Stop().
func (r *Recorder) Shutdown() error {
	return r.Stop()
}

// Store returns the served store.
func (r *Recorder) Store() *atomlog.Store {
	return r.store
}

// Drainer returns the background drainer.
func (r *Recorder) Drainer() *drain.Drainer {
	return r.drainer
}

// GetControl returns the Control interface for dynamic config and metrics.
func (r *Recorder) GetControl() api.Control {
	return r.control
}

// Registry returns the prometheus registry, nil when metrics are disabled.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// DiagnosticsHandler builds the HTTP handler over this recorder.
func (r *Recorder) DiagnosticsHandler() *diagnostics.Handler {
	deps := diagnostics.Deps{
		Store:   r.store,
		Drainer: r.drainer,
		Control: r.control,
	}
	if r.registry != nil {
		deps.Gatherer = r.registry
	}
	return diagnostics.NewHandler(deps)
}
