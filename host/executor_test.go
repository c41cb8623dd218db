package host

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutorAndClose(t *testing.T) {
	ctx := context.Background()

	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.NoError(t, e.Close(ctx))
}

func TestNewExecutorWithOptions(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e, err := NewExecutor(ctx, WithLogger(logger), WithMemoryLimitPages(64))
	require.NoError(t, err)
	defer e.Close(ctx)

	assert.Same(t, logger, e.logger)
}

func TestWithoutModuleStart(t *testing.T) {
	ctx := context.Background()

	e, err := NewExecutor(ctx, WithoutModuleStart())
	require.NoError(t, err)
	defer e.Close(ctx)
	assert.True(t, e.noStart)

	// Invalid binaries are still rejected on the no-start path.
	_, err = e.LoadModule(ctx, []byte{0x00})
	assert.Error(t, err)
}

func TestStartEnabledByDefault(t *testing.T) {
	ctx := context.Background()

	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	defer e.Close(ctx)
	assert.False(t, e.noStart)
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	cfg := defaultExecutorConfig()
	WithLogger(nil)(&cfg)
	assert.NotNil(t, cfg.logger)
}

func TestLoadModuleRejectsInvalidBinary(t *testing.T) {
	ctx := context.Background()

	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	defer e.Close(ctx)

	_, err = e.LoadModule(ctx, []byte("not a wasm binary"))
	assert.Error(t, err)
}

func TestGuestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, guestLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, guestLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, guestLevel("WARN"))
	assert.Equal(t, slog.LevelError, guestLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, guestLevel("bogus"))
}
