package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero/api"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

// ModuleInstance is one instantiated sync module.
type ModuleInstance struct {
	id     string
	module api.Module
	logger *slog.Logger
}

// ID returns the instance identifier assigned at load time.
func (m *ModuleInstance) ID() string {
	return m.id
}

// Close releases the instance.
func (m *ModuleInstance) Close(ctx context.Context) error {
	return m.module.Close(ctx)
}

// ComputeHash invokes the compute_hash export: the 64-bit rolling fingerprint
// of input's UTF-8 bytes, returned by value.
func (m *ModuleInstance) ComputeHash(ctx context.Context, input string) (uint64, error) {
	results, err := m.callWithInput(ctx, "compute_hash", []byte(input))
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("compute_hash returned no result")
	}
	return results[0], nil
}

// Greet invokes the greet export and decodes the response envelope.
func (m *ModuleInstance) Greet(ctx context.Context, name string) (string, error) {
	results, err := m.callWithInput(ctx, "greet", []byte(name))
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("greet returned no result")
	}

	var greeting string
	if err := m.decodeEnvelope(ctx, results[0], &greeting); err != nil {
		return "", fmt.Errorf("greet: %w", err)
	}
	return greeting, nil
}

// Describe invokes the describe export and validates the returned metadata
// before the host trusts it.
func (m *ModuleInstance) Describe(ctx context.Context) (wireformat.Metadata, error) {
	f := m.module.ExportedFunction("describe")
	if f == nil {
		return wireformat.Metadata{}, fmt.Errorf("export %q not found", "describe")
	}
	results, err := f.Call(ctx)
	if err != nil {
		return wireformat.Metadata{}, err
	}
	if len(results) == 0 {
		return wireformat.Metadata{}, fmt.Errorf("describe returned no result")
	}

	var md wireformat.Metadata
	if err := m.decodeEnvelope(ctx, results[0], &md); err != nil {
		return wireformat.Metadata{}, fmt.Errorf("describe: %w", err)
	}
	if err := ValidateMetadata(md); err != nil {
		return wireformat.Metadata{}, fmt.Errorf("describe: %w", err)
	}
	return md, nil
}

// callWithInput transfers input into guest memory through the guest allocator
// and invokes the export with (ptr, len). Empty input is passed as (0, 0).
func (m *ModuleInstance) callWithInput(ctx context.Context, name string, input []byte) ([]uint64, error) {
	f := m.module.ExportedFunction(name)
	if f == nil {
		return nil, fmt.Errorf("export %q not found", name)
	}

	var ptr uint64
	if len(input) > 0 {
		allocate := m.module.ExportedFunction("allocate")
		if allocate == nil {
			return nil, fmt.Errorf("guest does not export allocate")
		}
		res, err := allocate.Call(ctx, uint64(len(input)))
		if err != nil {
			return nil, fmt.Errorf("failed to allocate in guest: %w", err)
		}
		if len(res) == 0 || res[0] == 0 {
			return nil, fmt.Errorf("guest allocator returned no pointer")
		}
		ptr = res[0]
		if !m.module.Memory().Write(uint32(ptr), input) {
			return nil, fmt.Errorf("failed to write input to guest memory")
		}
	}

	results, err := f.Call(ctx, ptr, uint64(len(input)))
	if ptr != 0 {
		m.freeGuest(ctx, uint32(ptr), uint32(len(input)))
	}
	return results, err
}

// decodeEnvelope reads a packed ResponseWire out of guest memory, returns the
// buffer to the guest allocator, and unmarshals the payload into v.
func (m *ModuleInstance) decodeEnvelope(ctx context.Context, packed uint64, v any) error {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return fmt.Errorf("empty response")
	}
	data, ok := m.module.Memory().Read(ptr, length)
	if !ok {
		return fmt.Errorf("failed to read response from guest memory")
	}
	payload := make([]byte, length)
	copy(payload, data)
	m.freeGuest(ctx, ptr, length)

	var resp wireformat.ResponseWire
	if err := json.Unmarshal(payload, &resp); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if resp.Data == nil {
		return fmt.Errorf("response envelope has no data")
	}
	return json.Unmarshal(resp.Data, v)
}

// freeGuest returns a transfer buffer to the guest allocator. Failures are
// logged, not fatal: the guest caps its own pinned memory.
func (m *ModuleInstance) freeGuest(ctx context.Context, ptr, length uint32) {
	deallocate := m.module.ExportedFunction("deallocate")
	if deallocate == nil {
		return
	}
	if _, err := deallocate.Call(ctx, uint64(ptr), uint64(length)); err != nil {
		m.logger.Warn("host: failed to deallocate guest buffer", "instance", m.id, "error", err)
	}
}
