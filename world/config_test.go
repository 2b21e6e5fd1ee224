package world

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{
	// smaller world for tests
	"seed": 7,
	"tick_interval": "250ms",
	"max_ticks": 20,
	"initial_entities": 4,
	"batch_size": 2, /* draw batch */
	"log_level": "debug",
}`
	require.NoError(t, afero.WriteFile(fs, "/etc/world.jsonc", []byte(content), 0o644))
	cfg, err := LoadConfig(fs, "/etc/world.jsonc")
	require.NoError(t, err)
	require.Equal(t, int64(7), cfg.Seed)
	require.Equal(t, Duration(250*time.Millisecond), cfg.TickInterval)
	require.Equal(t, uint64(20), cfg.MaxTicks)
	require.Equal(t, 4, cfg.InitialEntities)
	require.Equal(t, 2, cfg.BatchSize)
	require.Equal(t, "debug", cfg.LogLevel)
	// untouched fields keep their defaults
	require.Equal(t, DefaultConfig().MaxEntities, cfg.MaxEntities)
}

func TestLoadConfigNumericDuration(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "c.json", []byte(`{"tick_interval": 1000000}`), 0o644))
	cfg, err := LoadConfig(fs, "c.json")
	require.NoError(t, err)
	require.Equal(t, Duration(time.Millisecond), cfg.TickInterval)
}

func TestLoadConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadConfig(fs, "missing.json")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"tick_interval": true}`), 0o644))
	_, err = LoadConfig(fs, "bad.json")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "invalid.json", []byte(`{"batch_size": 0}`), 0o644))
	_, err = LoadConfig(fs, "invalid.json")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"tick interval":    func(c *Config) { c.TickInterval = 0 },
		"max entities":     func(c *Config) { c.MaxEntities = 0 },
		"initial entities": func(c *Config) { c.InitialEntities = c.MaxEntities + 1 },
		"spawn":            func(c *Config) { c.SpawnPerTick = -1 },
		"batch":            func(c *Config) { c.BatchSize = -3 },
		"bounds":           func(c *Config) { c.Bounds = 0 },
		"speed":            func(c *Config) { c.MaxSpeed = -1 },
		"log level":        func(c *Config) { c.LogLevel = "loud" },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
}

func TestDurationMarshal(t *testing.T) {
	b, err := Duration(1500 * time.Millisecond).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"1.5s"`, string(b))
}
