// Package host loads the sync module under a wazero runtime and exposes its
// exports as typed Go calls.
package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// hostModuleName is the import namespace the guest binds against.
const hostModuleName = "sync_host"

// Executor owns the wazero runtime and the sync_host import module.
type Executor struct {
	runtime wazero.Runtime
	logger  *slog.Logger
	noStart bool
}

// NewExecutor builds a runtime with WASI and the sync_host imports
// instantiated.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rcfg := wazero.NewRuntimeConfig()
	if cfg.memoryLimitPages > 0 {
		rcfg = rcfg.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rcfg)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	e := &Executor{runtime: rt, logger: cfg.logger, noStart: cfg.withoutModuleStart}
	if err := e.registerHostModule(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host module: %w", err)
	}
	return e, nil
}

// Close releases the runtime and every module instantiated in it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// LoadModule instantiates wasmBytes and returns a handle for its exports.
// With WithoutModuleStart the default start functions are not run.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*ModuleInstance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	mcfg := wazero.NewModuleConfig()
	if e.noStart {
		mcfg = mcfg.WithStartFunctions()
	}
	mod, err := e.runtime.InstantiateModule(ctx, compiled, mcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	// Reactor-style builds expose _initialize instead of a start function.
	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	inst := &ModuleInstance{
		id:     uuid.NewString(),
		module: mod,
		logger: e.logger,
	}
	e.logger.Debug("host: module loaded", "instance", inst.id)
	return inst, nil
}
