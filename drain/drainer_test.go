package drain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/atomlog/adapters"
	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
)

type collectSink struct {
	mu   sync.Mutex
	recs []api.Record
	fail error
}

func (c *collectSink) Emit(_ context.Context, rec api.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.recs = append(c.recs, rec)
	return nil
}

func (c *collectSink) setFail(err error) {
	c.mu.Lock()
	c.fail = err
	c.mu.Unlock()
}

func (c *collectSink) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.recs))
	for i, r := range c.recs {
		out[i] = r.Text()
	}
	return out
}

func TestDrainOnceEmitsInOrder(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{}
	d := New(store, Options{Sinks: []api.Sink{sink}})

	for i := 0; i < 5; i++ {
		require.NoError(t, store.PushString(fmt.Sprintf("line %d", i)))
	}
	n, err := d.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"line 0", "line 1", "line 2", "line 3", "line 4"}, sink.texts())
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.PushString("later"))
	_, err = d.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6), sink.recs[5].Seq)

	assert.Equal(t, api.DrainStats{Drained: 6, Emitted: 6}, d.Stats())
}

func TestDrainOnceEmptyStore(t *testing.T) {
	d := New(atomlog.NewStore(), Options{Sinks: []api.Sink{&collectSink{}}})
	n, err := d.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDrainRetriesAfterSinkFailure(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{}
	d := New(store, Options{Sinks: []api.Sink{sink}})

	boom := errors.New("transport down")
	sink.setFail(boom)
	require.NoError(t, store.PushString("a"))
	require.NoError(t, store.PushString("b"))

	n, err := d.DrainOnce(context.Background())
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, api.ErrSinkFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, d.Backlog())

	sink.setFail(nil)
	require.NoError(t, store.PushString("c"))
	n, err = d.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a", "b", "c"}, sink.texts())

	stats := d.Stats()
	assert.Equal(t, uint64(1), stats.SinkErrors)
	assert.Equal(t, uint64(3), stats.Emitted)
	assert.Zero(t, stats.Backlog)
}

func TestDrainBacklogDropsOldest(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{fail: errors.New("down")}
	d := New(store, Options{Sinks: []api.Sink{sink}, MaxBacklog: 3})

	for i := 0; i < 5; i++ {
		require.NoError(t, store.PushString(fmt.Sprintf("r%d", i)))
	}
	_, err := d.DrainOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, d.Backlog())
	assert.Equal(t, uint64(2), d.Stats().Dropped)

	sink.setFail(nil)
	_, err = d.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3", "r4"}, sink.texts())
}

func TestDrainOnceCanceledContext(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{}
	d := New(store, Options{Sinks: []api.Sink{sink}})
	require.NoError(t, store.PushString("kept"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := d.DrainOnce(ctx)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, d.Backlog())
	assert.Empty(t, sink.texts())
}

func TestRunFinalDrainOnCancel(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{}
	d := New(store, Options{Sinks: []api.Sink{sink}, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.NoError(t, store.PushString("before shutdown"))
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, []string{"before shutdown"}, sink.texts())
}

func TestRunTicks(t *testing.T) {
	store := atomlog.NewStore()
	sink := &collectSink{}
	d := New(store, Options{Sinks: []api.Sink{sink}, Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	require.NoError(t, store.PushString("tick"))
	assert.Eventually(t, func() bool {
		return len(sink.texts()) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestIntervalHotReload(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	d := New(atomlog.NewStore(), Options{Control: ctrl, Interval: time.Second})

	require.NoError(t, ctrl.SetConfig(map[string]any{KeyInterval: 250}))
	assert.Equal(t, 250*time.Millisecond, d.Interval())

	require.NoError(t, ctrl.SetConfig(map[string]any{KeyInterval: "bogus"}))
	assert.Equal(t, 250*time.Millisecond, d.Interval())

	assert.ErrorIs(t, d.SetInterval(0), api.ErrInvalidArgument)
}

func TestDrainPublishesControlMetrics(t *testing.T) {
	store := atomlog.NewStore()
	ctrl := adapters.NewControlAdapter()
	d := New(store, Options{Control: ctrl, Sinks: []api.Sink{&collectSink{}}})

	require.NoError(t, store.PushString("m"))
	_, err := d.DrainOnce(context.Background())
	require.NoError(t, err)

	stats := ctrl.Stats()
	assert.Equal(t, 1, stats[MetricLast])
	assert.Equal(t, 0, stats[MetricBacklog])
}
