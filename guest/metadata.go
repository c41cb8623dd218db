// Package guest wires the module's operations to their WASM exports and owns
// the boundary glue: input decode, response packing, and panic diagnostics.
package guest

import (
	"encoding/json"
	"fmt"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

const (
	// ModuleName and ModuleVersion identify this module in describe output.
	ModuleName    = "obsidian-sync-wasm"
	ModuleVersion = "0.1.0"

	// ABIVersion is bumped whenever the packed pointer convention or a
	// wireformat struct changes incompatibly.
	ABIVersion = "1"
)

// operations lists the callable exports in declaration order.
var operations = []wireformat.OperationInfo{
	{Name: "compute_hash", Description: "64-bit rolling fingerprint of the input text", Returns: "u64"},
	{Name: "greet", Description: "demo greeting for the given name", Returns: "bytes"},
	{Name: "describe", Description: "module metadata including wire schemas", Returns: "bytes"},
}

// buildMetadata assembles the describe payload, including generated JSON
// schemas for every structure that crosses the boundary.
func buildMetadata() (wireformat.Metadata, error) {
	wireTypes := map[string]any{
		"log_message":  wireformat.LogMessageWire{},
		"panic_report": wireformat.PanicReportWire{},
		"response":     wireformat.ResponseWire{},
	}

	schemas := make(map[string]json.RawMessage, len(wireTypes))
	for name, v := range wireTypes {
		s, err := GenerateSchema(v)
		if err != nil {
			return wireformat.Metadata{}, fmt.Errorf("failed to generate %s schema: %w", name, err)
		}
		schemas[name] = s
	}

	return wireformat.Metadata{
		Name:        ModuleName,
		Version:     ModuleVersion,
		Description: "demonstration module exposing a rolling fingerprint and a greeting across the WASM boundary",
		ABIVersion:  ABIVersion,
		Operations:  operations,
		WireSchemas: schemas,
	}, nil
}
