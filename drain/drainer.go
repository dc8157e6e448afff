// File: drain/drainer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package drain

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/control"
	"github.com/momentics/atomlog/internal/logging"
)

// Config keys read from api.Control.
const (
	KeyInterval   = "drain.interval"
	MetricLast    = "drain.last_count"
	MetricBacklog = "drain.backlog"
)

const (
	defaultInterval   = time.Second
	defaultMaxBacklog = 4096
	finalFlushTimeout = 5 * time.Second
)

// Source is the consumer side of a record store.
type Source interface {
	Pop(out *atomlog.Records)
}

// Options configures a Drainer.
type Options struct {
	Interval   time.Duration // Tick period of Run
	MaxBacklog int           // Records kept for retry; oldest dropped beyond this
	Sinks      []api.Sink
	Logger     *zap.Logger
	Control    api.Control // Optional; receives metrics and supplies hot-reloaded interval
}

// Drainer periodically empties a store into sinks.
type Drainer struct {
	src        Source
	sinks      []api.Sink
	logger     *zap.Logger
	control    api.Control
	maxBacklog int

	interval atomic.Int64
	reset    chan struct{}

	mu      sync.Mutex // serializes drains; guards buf, backlog, seq
	buf     *atomlog.Records
	backlog *queue.Queue
	seq     uint64

	drained    atomic.Uint64
	emitted    atomic.Uint64
	dropped    atomic.Uint64
	sinkErrors atomic.Uint64
	backlogLen atomic.Int64
}

// New creates a Drainer reading from src.
func New(src Source, opts Options) *Drainer {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.MaxBacklog <= 0 {
		opts.MaxBacklog = defaultMaxBacklog
	}
	d := &Drainer{
		src:        src,
		sinks:      append([]api.Sink(nil), opts.Sinks...),
		logger:     logging.WithComponent(opts.Logger, "drain"),
		control:    opts.Control,
		maxBacklog: opts.MaxBacklog,
		reset:      make(chan struct{}, 1),
		buf:        new(atomlog.Records),
		backlog:    queue.New(),
	}
	d.interval.Store(int64(opts.Interval))
	if d.control != nil {
		d.control.OnReload(d.reload)
	}
	return d
}

// Interval returns the current tick period.
func (d *Drainer) Interval() time.Duration {
	return time.Duration(d.interval.Load())
}

// SetInterval changes the tick period of a running Drainer.
func (d *Drainer) SetInterval(iv time.Duration) error {
	if iv <= 0 {
		return api.ErrInvalidArgument
	}
	if time.Duration(d.interval.Swap(int64(iv))) == iv {
		return nil
	}
	select {
	case d.reset <- struct{}{}:
	default:
	}
	return nil
}

func (d *Drainer) reload() {
	v, ok := d.control.GetConfig()[KeyInterval]
	if !ok {
		return
	}
	iv, ok := control.DurationValue(v)
	if !ok {
		d.logger.Warn("ignoring invalid drain interval", zap.Any("value", v))
		return
	}
	if err := d.SetInterval(iv); err == nil {
		d.logger.Debug("drain interval reloaded", zap.Duration("interval", iv))
	}
}

// DrainOnce pops the store, queues non-empty records and flushes the backlog
// to every sink. It returns the number of records taken from the store.
// Records a sink failed on stay queued for the next call.
func (d *Drainer) DrainOnce(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.src.Pop(d.buf)
	n := 0
	d.buf.Each(func(_ int, s *atomlog.Slot) bool {
		data := make([]byte, s.Len())
		s.ReadInto(data)
		d.seq++
		d.enqueue(api.Record{Seq: d.seq, Data: data})
		n++
		return true
	})
	d.drained.Add(uint64(n))

	err := d.flush(ctx)
	d.backlogLen.Store(int64(d.backlog.Length()))
	if d.control != nil {
		d.control.SetMetric(MetricLast, n)
		d.control.SetMetric(MetricBacklog, d.backlog.Length())
	}
	return n, err
}

func (d *Drainer) enqueue(rec api.Record) {
	d.backlog.Add(rec)
	for d.backlog.Length() > d.maxBacklog {
		dropped := d.backlog.Remove().(api.Record)
		d.dropped.Add(1)
		d.logger.Debug("dropping record", zap.Uint64("seq", dropped.Seq), zap.Error(api.ErrBacklogOverflow))
	}
}

func (d *Drainer) flush(ctx context.Context) error {
	for d.backlog.Length() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := d.backlog.Peek().(api.Record)
		for _, sink := range d.sinks {
			if err := sink.Emit(ctx, rec); err != nil {
				d.sinkErrors.Add(1)
				return fmt.Errorf("%w: seq %d: %w", api.ErrSinkFailed, rec.Seq, err)
			}
		}
		d.backlog.Remove()
		d.emitted.Add(1)
	}
	return nil
}

// Run drains on every tick until ctx is done, then performs a final drain
// bounded by a short timeout. It returns the final drain's error.
func (d *Drainer) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.Interval())
	defer ticker.Stop()
	d.logger.Info("drainer started", zap.Duration("interval", d.Interval()), zap.Int("sinks", len(d.sinks)))

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
			n, err := d.DrainOnce(flushCtx)
			cancel()
			d.logger.Info("drainer stopped", zap.Int("final_records", n), zap.Error(err))
			return err
		case <-ticker.C:
			if _, err := d.DrainOnce(ctx); err != nil && ctx.Err() == nil {
				d.logger.Warn("drain failed", zap.Error(err), zap.Int("backlog", d.Backlog()))
			}
		case <-d.reset:
			ticker.Reset(d.Interval())
		}
	}
}

// Backlog returns the number of records waiting for delivery.
func (d *Drainer) Backlog() int {
	return int(d.backlogLen.Load())
}

// Stats returns a snapshot of drainer counters.
func (d *Drainer) Stats() api.DrainStats {
	return api.DrainStats{
		Drained:    d.drained.Load(),
		Emitted:    d.emitted.Load(),
		Dropped:    d.dropped.Load(),
		SinkErrors: d.sinkErrors.Load(),
		Backlog:    d.Backlog(),
	}
}
