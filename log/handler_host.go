//go:build !wasip1

package log

import (
	"context"
	"fmt"
	"log/slog"
)

// Handle for non-WASM builds. Keeps the package compiling for host-side
// tests; real guests always run the wasip1 implementation.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	msg := h.buildWire(record)
	fmt.Printf("[guest-log stub] level=%s msg=%q attrs=%d\n", msg.Level, msg.Message, len(msg.Attrs))
	return nil
}
