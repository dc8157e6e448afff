// File: capture/core.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package capture

import (
	"bytes"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/internal/logging"
)

// Core is a zapcore.Core that pushes each encoded entry into a store as one
// record, truncated to the slot size. Pushes from a Core and all cores
// derived from it with With are serialized.
type Core struct {
	zapcore.LevelEnabler
	enc   zapcore.Encoder
	store api.LogStore
	mu    *sync.Mutex
}

var _ zapcore.Core = (*Core)(nil)

// NewCore builds a Core. A nil encoder selects a console encoder with the
// compact capture settings.
func NewCore(store api.LogStore, enc zapcore.Encoder, level zapcore.LevelEnabler) *Core {
	if enc == nil {
		enc = zapcore.NewConsoleEncoder(logging.EncoderConfig())
	}
	return &Core{LevelEnabler: level, enc: enc, store: store, mu: new(sync.Mutex)}
}

// With returns a Core carrying fields on every entry.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := c.enc.Clone()
	for i := range fields {
		fields[i].AddTo(clone)
	}
	return &Core{LevelEnabler: c.LevelEnabler, enc: clone, store: c.store, mu: c.mu}
}

// Check adds c to ce when the entry level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write encodes the entry and pushes it.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	line := bytes.TrimRight(buf.Bytes(), "\n")
	if len(line) > atomlog.SlotSize {
		line = line[:atomlog.SlotSize]
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Push(line)
}

// Sync is a no-op; records are in memory as soon as Write returns.
func (c *Core) Sync() error {
	return nil
}

// Tee returns a logger writing to logger's core and to store.
func Tee(logger *zap.Logger, store api.LogStore, level zapcore.LevelEnabler) *zap.Logger {
	mirror := NewCore(store, nil, level)
	return logging.OrNop(logger).WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, mirror)
	}))
}
