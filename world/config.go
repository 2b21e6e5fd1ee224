package world

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

var ErrInvalidConfig = errors.New("invalid config")

// Duration decodes from a Go duration string ("250ms") or a number of
// nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return errors.Errorf("invalid duration %s", b)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type Config struct {
	Seed            int64    `json:"seed"`
	TickInterval    Duration `json:"tick_interval"`
	MaxTicks        uint64   `json:"max_ticks"`
	InitialEntities int      `json:"initial_entities"`
	MaxEntities     int      `json:"max_entities"`
	SpawnPerTick    int      `json:"spawn_per_tick"`
	DespawnPerTick  int      `json:"despawn_per_tick"`
	BatchSize       int      `json:"batch_size"`
	ReportEvery     uint64   `json:"report_every"`
	Bounds          float64  `json:"bounds"`
	MaxSpeed        float64  `json:"max_speed"`
	LogLevel        string   `json:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:            1,
		TickInterval:    Duration(100 * time.Millisecond),
		MaxTicks:        0,
		InitialEntities: 128,
		MaxEntities:     1024,
		SpawnPerTick:    8,
		DespawnPerTick:  6,
		BatchSize:       64,
		ReportEvery:     50,
		Bounds:          100,
		MaxSpeed:        10,
		LogLevel:        "info",
	}
}

// LoadConfig reads a JSON config, comments and trailing commas allowed, on
// top of DefaultConfig. An empty path yields the defaults.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	bt, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := json.Unmarshal(jsonc.ToJSON(bt), cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return errors.Wrap(ErrInvalidConfig, "tick_interval must be positive")
	case c.MaxEntities <= 0:
		return errors.Wrap(ErrInvalidConfig, "max_entities must be positive")
	case c.InitialEntities < 0 || c.InitialEntities > c.MaxEntities:
		return errors.Wrapf(ErrInvalidConfig, "initial_entities must be within [0, %d]", c.MaxEntities)
	case c.SpawnPerTick < 0 || c.DespawnPerTick < 0:
		return errors.Wrap(ErrInvalidConfig, "spawn_per_tick and despawn_per_tick must not be negative")
	case c.BatchSize <= 0:
		return errors.Wrap(ErrInvalidConfig, "batch_size must be positive")
	case c.Bounds <= 0:
		return errors.Wrap(ErrInvalidConfig, "bounds must be positive")
	case c.MaxSpeed < 0:
		return errors.Wrap(ErrInvalidConfig, "max_speed must not be negative")
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	return nil
}
