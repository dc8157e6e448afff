// File: drain/sinks.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package drain

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/rawio"
)

// FuncSink adapts a function to api.Sink.
type FuncSink func(ctx context.Context, rec api.Record) error

// Emit calls f.
func (f FuncSink) Emit(ctx context.Context, rec api.Record) error {
	return f(ctx, rec)
}

// LogSink re-emits records as zap entries.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink logging each record at info level.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Emit logs rec.
func (s *LogSink) Emit(_ context.Context, rec api.Record) error {
	s.logger.Info("atomlog record", zap.Uint64("seq", rec.Seq), zap.ByteString("text", rec.Data))
	return nil
}

// WriterSink writes one line per record to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes rec followed by a newline as a single write.
func (s *WriterSink) Emit(_ context.Context, rec api.Record) error {
	line := make([]byte, 0, len(rec.Data)+1)
	line = append(append(line, rec.Data...), '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(line)
	return err
}

// FDSink writes records straight to a raw descriptor, skipping os.File.
type FDSink struct {
	fd rawio.FD
}

// NewFDSink wraps an already open descriptor.
func NewFDSink(fd rawio.FD) *FDSink {
	return &FDSink{fd: fd}
}

// Stderr returns a sink writing to the process standard error.
func Stderr() *FDSink { return NewFDSink(rawio.Stderr()) }

// Stdout returns a sink writing to the process standard output.
func Stdout() *FDSink { return NewFDSink(rawio.Stdout()) }

// Emit writes rec and a newline in one write call.
func (s *FDSink) Emit(_ context.Context, rec api.Record) error {
	line := make([]byte, 0, len(rec.Data)+1)
	line = append(append(line, rec.Data...), '\n')
	return rawio.Write(s.fd, line)
}

// Sink names understood by NamedSinks.
const (
	NameLog    = "log"
	NameStderr = "stderr"
	NameStdout = "stdout"
)

var namedSinks = map[string]func(logger *zap.Logger) api.Sink{
	NameLog:    func(logger *zap.Logger) api.Sink { return NewLogSink(logger) },
	NameStderr: func(*zap.Logger) api.Sink { return Stderr() },
	NameStdout: func(*zap.Logger) api.Sink { return Stdout() },
}

// KnownSink reports whether NamedSinks accepts name.
func KnownSink(name string) bool {
	_, ok := namedSinks[name]
	return ok
}

// NamedSinks resolves configured sink names. logger backs the "log" sink.
func NamedSinks(names []string, logger *zap.Logger) ([]api.Sink, error) {
	sinks := make([]api.Sink, 0, len(names))
	for _, name := range names {
		build, ok := namedSinks[name]
		if !ok {
			return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown sink").WithContext("sink", name)
		}
		sinks = append(sinks, build(logger))
	}
	return sinks, nil
}
