// File: metrics/collector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus view of store and drainer counters. Values are read at scrape
// time from the atomic counters; nothing is added to the recording path.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/momentics/atomlog/api"
)

const namespace = "atomlog"

// StoreStatser is implemented by *atomlog.Store.
type StoreStatser interface {
	Stats() api.StoreStats
}

// DrainStatser is implemented by *drain.Drainer.
type DrainStatser interface {
	Stats() api.DrainStats
}

// Collector exports recorder counters.
type Collector struct {
	store StoreStatser
	drain DrainStatser

	records     *prometheus.Desc
	pushes      *prometheus.Desc
	evictions   *prometheus.Desc
	truncations *prometheus.Desc
	drains      *prometheus.Desc

	drained    *prometheus.Desc
	emitted    *prometheus.Desc
	dropped    *prometheus.Desc
	sinkErrors *prometheus.Desc
	backlog    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a Collector. drain may be nil.
func NewCollector(store StoreStatser, drain DrainStatser) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		store: store,
		drain: drain,

		records:     desc("records", "Logically occupied slots in the store."),
		pushes:      desc("pushes_total", "Records pushed into the store."),
		evictions:   desc("evictions_total", "Oldest records evicted on overflow."),
		truncations: desc("truncations_total", "Records truncated to the slot size."),
		drains:      desc("drains_total", "Store drains performed."),

		drained:    desc("drain_records_total", "Non-empty records taken from the store by the drainer."),
		emitted:    desc("drain_emitted_total", "Records delivered to every sink."),
		dropped:    desc("drain_dropped_total", "Records dropped from a full drain backlog."),
		sinkErrors: desc("drain_sink_errors_total", "Sink emit failures."),
		backlog:    desc("drain_backlog", "Records waiting for delivery."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.pushes
	ch <- c.evictions
	ch <- c.truncations
	ch <- c.drains
	if c.drain != nil {
		ch <- c.drained
		ch <- c.emitted
		ch <- c.dropped
		ch <- c.sinkErrors
		ch <- c.backlog
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.store.Stats()
	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(st.Records))
	ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(st.Pushes))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(st.Evictions))
	ch <- prometheus.MustNewConstMetric(c.truncations, prometheus.CounterValue, float64(st.Truncations))
	ch <- prometheus.MustNewConstMetric(c.drains, prometheus.CounterValue, float64(st.Drains))
	if c.drain == nil {
		return
	}
	ds := c.drain.Stats()
	ch <- prometheus.MustNewConstMetric(c.drained, prometheus.CounterValue, float64(ds.Drained))
	ch <- prometheus.MustNewConstMetric(c.emitted, prometheus.CounterValue, float64(ds.Emitted))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(ds.Dropped))
	ch <- prometheus.MustNewConstMetric(c.sinkErrors, prometheus.CounterValue, float64(ds.SinkErrors))
	ch <- prometheus.MustNewConstMetric(c.backlog, prometheus.GaugeValue, float64(ds.Backlog))
}

// NewRegistry returns a registry holding c plus Go runtime and process collectors.
func NewRegistry(c *Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		c,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
