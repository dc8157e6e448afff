// File: diagnostics/handler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// HTTP endpoints for inspecting and draining the recorder.

package diagnostics

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
)

// Peeker copies the store without clearing it. *atomlog.Store implements it.
type Peeker interface {
	Peek(out *atomlog.Records)
	Stats() api.StoreStats
}

// Drainer runs one drain cycle. *drain.Drainer implements it.
type Drainer interface {
	DrainOnce(ctx context.Context) (int, error)
	Stats() api.DrainStats
}

// Deps aggregates handler dependencies. Drainer, Control and Gatherer are optional.
type Deps struct {
	Store    Peeker
	Drainer  Drainer
	Control  api.Control
	Gatherer prometheus.Gatherer
}

// Handler exposes health, log inspection and metrics endpoints.
type Handler struct {
	deps Deps

	mu  sync.Mutex // guards buf
	buf *atomlog.Records
}

// LogEntry is one occupied slot in the /debug/logs response.
type LogEntry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// NewHandler returns handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps, buf: new(atomlog.Records)}
}

// RegisterPublic attaches non-debug endpoints.
func (h *Handler) RegisterPublic(rg gin.IRoutes) {
	rg.GET("/health", h.health)
	if h.deps.Gatherer != nil {
		rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.deps.Gatherer, promhttp.HandlerOpts{})))
	}
}

// RegisterDebug attaches inspection endpoints.
func (h *Handler) RegisterDebug(rg gin.IRoutes) {
	rg.GET("/debug/logs", h.logs)
	rg.GET("/debug/state", h.state)
	if h.deps.Drainer != nil {
		rg.POST("/debug/logs/drain", h.drain)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) logs(c *gin.Context) {
	h.mu.Lock()
	h.deps.Store.Peek(h.buf)
	entries := make([]LogEntry, 0, h.buf.Count())
	h.buf.Each(func(i int, s *atomlog.Slot) bool {
		entries = append(entries, LogEntry{Index: i, Text: s.Text()})
		return true
	})
	h.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"logs": entries, "stats": h.deps.Store.Stats()})
}

func (h *Handler) drain(c *gin.Context) {
	n, err := h.deps.Drainer.DrainOnce(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"drained": n, "error": err.Error(), "stats": h.deps.Drainer.Stats()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drained": n, "stats": h.deps.Drainer.Stats()})
}

func (h *Handler) state(c *gin.Context) {
	body := gin.H{"store": h.deps.Store.Stats()}
	if h.deps.Drainer != nil {
		body["drain"] = h.deps.Drainer.Stats()
	}
	if h.deps.Control != nil {
		body["control"] = h.deps.Control.Stats()
	}
	c.JSON(http.StatusOK, body)
}
