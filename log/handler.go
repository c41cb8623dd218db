// Package log adapts structured logging (slog) for the module's WASM
// environment: records produced by the guest are serialized to the wire
// format and handed to the host through the sync_host log_message import.
package log

import (
	"context"
	"log/slog"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

// WasmLogHandler implements slog.Handler on top of the host log import.
type WasmLogHandler struct {
	opts  handlerConfig
	attrs []wireformat.LogAttrWire
	group string
}

type handlerConfig struct {
	level slog.Level
}

// HandlerOption configures the WasmLogHandler.
type HandlerOption func(*handlerConfig)

// WithLevel sets the minimum level forwarded to the host. Records below it
// are dropped on the guest side, before any serialization.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a WasmLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *WasmLogHandler {
	cfg := handlerConfig{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WasmLogHandler{opts: cfg}
}

// Enabled reports whether records at the given level are forwarded.
func (h *WasmLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// WithAttrs returns a handler that includes attrs in every record.
func (h *WasmLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = make([]wireformat.LogAttrWire, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, attr := range attrs {
		nh.attrs = append(nh.attrs, toLogAttrWire(h.group, attr))
	}
	return &nh
}

// WithGroup returns a handler that qualifies subsequent attribute keys with
// name.
func (h *WasmLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}

// buildWire assembles the wire message for a record, bound attributes first.
// Shared by the wasm and host Handle implementations.
func (h *WasmLogHandler) buildWire(record slog.Record) wireformat.LogMessageWire {
	msg := wireformat.LogMessageWire{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}
	if n := len(h.attrs) + record.NumAttrs(); n > 0 {
		msg.Attrs = make([]wireformat.LogAttrWire, 0, n)
	}
	msg.Attrs = append(msg.Attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = append(msg.Attrs, toLogAttrWire(h.group, attr))
		return true
	})
	return msg
}
