package host

import "log/slog"

type executorConfig struct {
	logger             *slog.Logger
	memoryLimitPages   uint32
	withoutModuleStart bool
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		logger:           slog.Default(),
		memoryLimitPages: 0, // 0 = wazero's default ceiling
	}
}

// Option configures the Executor.
type Option func(*executorConfig)

// WithLogger routes guest logs and panic reports through l.
func WithLogger(l *slog.Logger) Option {
	return func(c *executorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMemoryLimitPages caps the guest's linear memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *executorConfig) {
		c.memoryLimitPages = pages
	}
}

// WithoutModuleStart skips the module's start functions at load time.
// Reactor-style builds are still initialized through _initialize.
func WithoutModuleStart() Option {
	return func(c *executorConfig) {
		c.withoutModuleStart = true
	}
}
