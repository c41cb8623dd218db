//go:build wasip1

package guest

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TWDickson/ObsidianSyncWASM/greeting"
	"github.com/TWDickson/ObsidianSyncWASM/hash"
	"github.com/TWDickson/ObsidianSyncWASM/internal/abi"
	"github.com/TWDickson/ObsidianSyncWASM/wireformat"

	_ "github.com/TWDickson/ObsidianSyncWASM/log" // route slog through the host
)

// compute_hash returns the fingerprint itself, not a packed pointer: the
// contract is a scalar returned by value. The operation is total, so the only
// way to reach the recovery path is a boundary bug, in which case the host
// gets a panic report and a zero result.
//
//go:wasmexport compute_hash
func _compute_hash(ptr, length uint32) (result uint64) {
	defer recoverExport("compute_hash", func() { result = 0 })
	return hash.Sum64(abi.BytesFromPtr(abi.PackPtrLen(ptr, length)))
}

//go:wasmexport greet
func _greet(ptr, length uint32) uint64 {
	return handleExportedCall("greet", func() (any, error) {
		name := string(abi.BytesFromPtr(abi.PackPtrLen(ptr, length)))
		return greeting.Greet(name), nil
	})
}

//go:wasmexport describe
func _describe() uint64 {
	return handleExportedCall("describe", func() (any, error) {
		return buildMetadata()
	})
}

// handleExportedCall wraps a byte-returning export: the result is marshaled
// into a ResponseWire envelope, and errors or panics become structured error
// payloads instead of traps.
func handleExportedCall(export string, f func() (any, error)) (packed uint64) {
	defer func() {
		if r := recover(); r != nil {
			reportPanic(export, r)
			abi.FreeAllTracked()
			packed = packError(&wireformat.ErrorDetail{
				Message: fmt.Sprintf("%s: panic: %v", export, r),
				Type:    "panic",
			})
		}
	}()

	result, err := f()
	if err != nil {
		slog.Error("guest: export failed", "export", export, "error", err.Error())
		return packError(&wireformat.ErrorDetail{Message: err.Error(), Type: "internal"})
	}

	data, err := json.Marshal(result)
	if err != nil {
		slog.Error("guest: failed to marshal export result", "export", export, "error", err.Error())
		return packError(&wireformat.ErrorDetail{Message: err.Error(), Type: "internal"})
	}
	return packResponse(wireformat.ResponseWire{Data: data})
}

// recoverExport is the recovery path for scalar-returning exports, which have
// no envelope to carry an error: the panic is reported to the host and the
// fallback sets the return value.
func recoverExport(export string, fallback func()) {
	if r := recover(); r != nil {
		reportPanic(export, r)
		abi.FreeAllTracked()
		fallback()
	}
}

func packError(detail *wireformat.ErrorDetail) uint64 {
	return packResponse(wireformat.ResponseWire{Error: detail})
}

func packResponse(resp wireformat.ResponseWire) uint64 {
	data, err := json.Marshal(resp)
	if err != nil {
		data = []byte(`{"error":{"message":"failed to marshal response envelope","type":"internal"}}`)
	}
	return abi.PtrFromBytes(data)
}
