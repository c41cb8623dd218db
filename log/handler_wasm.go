//go:build wasip1

package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TWDickson/ObsidianSyncWASM/internal/abi"
)

// Host function carrying one serialized LogMessageWire. Matches the export
// registered by the host executor.
//
//go:wasmimport sync_host log_message
//nolint:revive // snake_case matches the WASM import name
func host_log_message(packed uint64)

// Importing this package from a wasm guest makes slog route to the host.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}

// Handle serializes the record and forwards it through the host import. The
// host reads the payload during the call, so the transfer buffer is unpinned
// as soon as it returns.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	payload, err := json.Marshal(h.buildWire(record))
	if err != nil {
		// Last resort: the record still surfaces on stdout.
		fmt.Printf("log: failed to marshal record for host: %v (message %q)\n", err, record.Message)
		return nil
	}

	packed := abi.PtrFromBytes(payload)
	host_log_message(packed)
	abi.DeallocatePacked(packed)
	return nil
}
