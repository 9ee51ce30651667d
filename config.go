package quiver

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config carries process-wide allocator settings. Values load from QUIVER_*
// environment variables through FromEnv; zero fields fall back to defaults
// at Startup.
type Config struct {
	// PageSize is the default page size for pooled arenas.
	PageSize int `envconfig:"PAGE_SIZE" default:"65536"`
	// PoolCapacity caps idle shells retained per provider.
	PoolCapacity int `envconfig:"POOL_CAPACITY" default:"8"`
	// BypassPool disables shell recycling so every teardown releases its
	// pages to the provider immediately, where memory tools can see them.
	BypassPool bool `envconfig:"BYPASS_POOL" default:"false"`
	// Poison fills blocks from pooled arenas with PoisonByte.
	Poison bool `envconfig:"POISON" default:"false"`
	// LogLevel and LogPretty configure the library's zerolog output.
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// DefaultConfig returns the compiled-in defaults: 64 KiB pages, eight idle
// shells per provider, diagnostics off.
func DefaultConfig() Config {
	return Config{
		PageSize:     DefaultPageSize,
		PoolCapacity: 8,
		LogLevel:     "warn",
	}
}

// FromEnv loads and validates a Config from QUIVER_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("QUIVER", &cfg); err != nil {
		return Config{}, fmt.Errorf("quiver: config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work. Zero values are legal and mean
// "use the default".
func (c Config) Validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("quiver: config: negative page size %d", c.PageSize)
	}
	if c.PoolCapacity < 0 {
		return fmt.Errorf("quiver: config: negative pool capacity %d", c.PoolCapacity)
	}
	return nil
}
