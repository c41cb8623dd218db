//go:build wasip1

package guest

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/TWDickson/ObsidianSyncWASM/internal/abi"
	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

// Host function carrying one serialized PanicReportWire.
//
//go:wasmimport sync_host report_panic
//nolint:revive // snake_case matches the WASM import name
func host_report_panic(packed uint64)

var (
	diagnosticsOnce      sync.Once
	diagnosticsInstalled bool
)

// Install arms the diagnostic panic reporter. Idempotent, no teardown: once
// armed, a recovered export panic is reported to the host with a stack trace
// instead of surfacing as an opaque trap. Module mains call this first.
func Install() {
	diagnosticsOnce.Do(func() {
		diagnosticsInstalled = true
	})
}

// reportPanic sends a readable diagnostic to the host. Before Install the
// report is suppressed and only the structured error payload remains.
func reportPanic(export string, r any) {
	if !diagnosticsInstalled {
		return
	}

	report := wireformat.PanicReportWire{
		Timestamp: time.Now(),
		Export:    export,
		Message:   fmt.Sprintf("%v", r),
		Stack:     string(debug.Stack()),
	}
	payload, err := json.Marshal(report)
	if err != nil {
		fmt.Printf("guest: failed to marshal panic report: %v\n", err)
		return
	}

	packed := abi.PtrFromBytes(payload)
	host_report_panic(packed)
	abi.DeallocatePacked(packed)
}
