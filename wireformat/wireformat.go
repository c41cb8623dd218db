// Package wireformat defines the JSON structures that cross the WASM boundary
// between the host and the guest module. These types are the ABI contract and
// must stay backward compatible.
package wireformat

import (
	"encoding/json"
	"fmt"
	"time"
)

// LogMessageWire carries one log record from guest to host.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
}

// LogAttrWire is a single slog attribute flattened for transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"` // "string", "int64", "uint64", "bool", "float64", "time", "duration", "error", "json", "any"
	Value string `json:"value"`
}

// PanicReportWire is the diagnostic report a guest export sends to the host
// when it recovers from a panic, so the host can print something readable
// instead of a bare trap.
type PanicReportWire struct {
	Timestamp time.Time `json:"timestamp"`
	Export    string    `json:"export"`
	Message   string    `json:"message"`
	Stack     string    `json:"stack,omitempty"`
}

// ErrorDetail is the structured error payload returned by byte-returning
// exports in place of a trap.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"` // "panic", "internal"
}

func (e *ErrorDetail) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// ResponseWire is the envelope for exports that return bytes (greet,
// describe). Exactly one of Data and Error is set.
type ResponseWire struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ErrorDetail    `json:"error,omitempty"`
}

// Metadata describes the module to the host. Returned by the describe export.
type Metadata struct {
	Name        string                     `json:"name" validate:"required"`
	Version     string                     `json:"version" validate:"required,semver"`
	Description string                     `json:"description"`
	ABIVersion  string                     `json:"abi_version" validate:"required"`
	Operations  []OperationInfo            `json:"operations"`
	WireSchemas map[string]json.RawMessage `json:"wire_schemas,omitempty"`
}

// OperationInfo describes a single callable export.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Returns     string `json:"returns"` // "u64" for scalar returns, "bytes" for packed ptr/len
}
