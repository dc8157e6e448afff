package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/drain"
)

func TestCollectorStoreOnly(t *testing.T) {
	st := atomlog.NewStore()
	for i := 0; i < atomlog.MaxRecords+3; i++ {
		_ = st.PushString("x")
	}
	c := NewCollector(st, nil)

	assert.Equal(t, 5, testutil.CollectAndCount(c))

	expected := `
# HELP atomlog_evictions_total Oldest records evicted on overflow.
# TYPE atomlog_evictions_total counter
atomlog_evictions_total 3
# HELP atomlog_records Logically occupied slots in the store.
# TYPE atomlog_records gauge
atomlog_records 400
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"atomlog_evictions_total", "atomlog_records"))
}

func TestCollectorWithDrainer(t *testing.T) {
	st := atomlog.NewStore()
	d := drain.New(st, drain.Options{Sinks: []api.Sink{drain.FuncSink(func(context.Context, api.Record) error { return nil })}})
	_ = st.PushString("a")
	_ = st.PushString("b")
	_, err := d.DrainOnce(context.Background())
	require.NoError(t, err)

	c := NewCollector(st, d)
	assert.Equal(t, 10, testutil.CollectAndCount(c))

	expected := `
# HELP atomlog_drain_emitted_total Records delivered to every sink.
# TYPE atomlog_drain_emitted_total counter
atomlog_drain_emitted_total 2
# HELP atomlog_drains_total Store drains performed.
# TYPE atomlog_drains_total counter
atomlog_drains_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"atomlog_drain_emitted_total", "atomlog_drains_total"))
}

func TestNewRegistryGathers(t *testing.T) {
	reg := NewRegistry(NewCollector(atomlog.NewStore(), nil))
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["atomlog_pushes_total"])
	assert.True(t, names["go_goroutines"])
}
