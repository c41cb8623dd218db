package host

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tetratelabs/wazero/api"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

// registerHostModule instantiates the sync_host import module: log_message
// for guest slog records, report_panic for export panic diagnostics.
func (e *Executor) registerHostModule(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(hostModuleName)

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			payload, ok := readPacked(m, packed)
			if !ok {
				return
			}
			var msg wireformat.LogMessageWire
			if err := json.Unmarshal(payload, &msg); err != nil {
				e.logger.Info("guest log (raw)", "payload", string(payload))
				return
			}
			args := make([]any, 0, 2*len(msg.Attrs))
			for _, attr := range msg.Attrs {
				args = append(args, attr.Key, attr.Value)
			}
			e.logger.Log(ctx, guestLevel(msg.Level), msg.Message, args...)
		}).
		Export("log_message")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			payload, ok := readPacked(m, packed)
			if !ok {
				return
			}
			var report wireformat.PanicReportWire
			if err := json.Unmarshal(payload, &report); err != nil {
				e.logger.Error("guest panic (unparsed)", "payload", string(payload))
				return
			}
			// One readable record instead of an opaque trap.
			e.logger.Error("guest panic recovered",
				"export", report.Export,
				"message", report.Message,
				"stack", report.Stack,
			)
		}).
		Export("report_panic")

	_, err := builder.Instantiate(ctx)
	return err
}

// readPacked reads a packed ptr/len region out of the calling module's memory.
func readPacked(m api.Module, packed uint64) ([]byte, bool) {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return nil, false
	}
	return m.Memory().Read(ptr, length)
}

// guestLevel maps a wire level string back to a slog.Level. Unknown strings
// land on INFO.
func guestLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
