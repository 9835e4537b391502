package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DataSourceYAML     = "yaml"
	DataSourcePostgres = "postgres"
)

// Engine holds all configuration for the spell simulation server.
type Engine struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Spell data
	DataSource string `yaml:"data_source" env:"DATA_SOURCE"` // yaml | postgres
	DataDir    string `yaml:"data_dir" env:"DATA_DIR"`
	ScriptsDir string `yaml:"scripts_dir" env:"SCRIPTS_DIR"` // empty disables Lua hooks

	Database  DatabaseConfig  `yaml:"database" envPrefix:"DB_"`
	Maps      MapsConfig      `yaml:"maps" envPrefix:"MAPS_"`
	Spell     SpellConfig     `yaml:"spell" envPrefix:"SPELL_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"OTEL_"`
}

// TelemetryConfig enables OTLP trace export. An empty endpoint keeps the
// no-op providers.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// MapsConfig describes the simulated map partitions.
type MapsConfig struct {
	Count        int           `yaml:"count" env:"COUNT"`
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	CellSize     float64       `yaml:"cell_size" env:"CELL_SIZE"`
	UnitsPerMap  int           `yaml:"units_per_map" env:"UNITS"`
	RunFor       time.Duration `yaml:"run_for" env:"RUN_FOR"` // 0 = until signal
}

// SpellConfig holds the engine tunables that are data, not code.
type SpellConfig struct {
	// Proc chance for PPM entries is attackTimeMs * PPM / PPMDivisor percent.
	PPMDivisor         float64           `yaml:"ppm_divisor" env:"PPM_DIVISOR"`
	MaxProcDepth       int               `yaml:"max_proc_depth" env:"MAX_PROC_DEPTH"`
	HeartbeatInterval  time.Duration     `yaml:"heartbeat_interval" env:"HEARTBEAT_INTERVAL"`
	ChainJumpDistance  float64           `yaml:"chain_jump_distance" env:"CHAIN_JUMP_DISTANCE"`
	NearbySearchRadius float64           `yaml:"nearby_search_radius" env:"NEARBY_SEARCH_RADIUS"`
	Diminishing        DiminishingConfig `yaml:"diminishing" envPrefix:"DR_"`
}

// DiminishingConfig is the diminishing returns policy. Each curve lists the
// duration multiplier per application level; the level after the last entry
// is immune.
type DiminishingConfig struct {
	Window time.Duration        `yaml:"window" env:"WINDOW"`
	Curves map[string][]float64 `yaml:"curves"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:   "info",
		DataSource: DataSourceYAML,
		DataDir:    "data/spells",
		ScriptsDir: "data/scripts",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "spellcore",
			Password: "spellcore",
			DBName:   "spellcore",
			SSLMode:  "disable",
		},
		Maps: MapsConfig{
			Count:        4,
			TickInterval: 100 * time.Millisecond,
			CellSize:     64,
			UnitsPerMap:  16,
		},
		Spell: DefaultSpellConfig(),
		Telemetry: TelemetryConfig{
			ServiceName: "spellsim",
		},
	}
}

// DefaultSpellConfig returns the engine tunables alone, for tests.
func DefaultSpellConfig() SpellConfig {
	return SpellConfig{
		PPMDivisor:         600,
		MaxProcDepth:       3,
		HeartbeatInterval:  5 * time.Second,
		ChainJumpDistance:  10,
		NearbySearchRadius: 100,
		Diminishing: DiminishingConfig{
			Window: 18 * time.Second,
			Curves: map[string][]float64{
				"default": {1.0, 0.5, 0.25},
				"taunt":   {1.0, 0.65, 0.42, 0.27},
			},
		},
	}
}

// LoadEngine loads engine config from a YAML file and applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values the engine cannot run with.
func (c Engine) Validate() error {
	var errs []error
	if c.DataSource != DataSourceYAML && c.DataSource != DataSourcePostgres {
		errs = append(errs, fmt.Errorf("data_source %q: %w", c.DataSource, ErrInvalidConfig))
	}
	if c.Maps.Count < 1 {
		errs = append(errs, fmt.Errorf("maps.count must be positive: %w", ErrInvalidConfig))
	}
	if c.Maps.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("maps.tick_interval must be positive: %w", ErrInvalidConfig))
	}
	if c.Maps.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("maps.cell_size must be positive: %w", ErrInvalidConfig))
	}
	if err := c.Spell.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s SpellConfig) Validate() error {
	var errs []error
	if s.PPMDivisor <= 0 {
		errs = append(errs, fmt.Errorf("spell.ppm_divisor must be positive: %w", ErrInvalidConfig))
	}
	if s.MaxProcDepth < 1 {
		errs = append(errs, fmt.Errorf("spell.max_proc_depth must be at least 1: %w", ErrInvalidConfig))
	}
	if s.HeartbeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("spell.heartbeat_interval must be positive: %w", ErrInvalidConfig))
	}
	if s.Diminishing.Window <= 0 {
		errs = append(errs, fmt.Errorf("spell.diminishing.window must be positive: %w", ErrInvalidConfig))
	}
	if _, ok := s.Diminishing.Curves["default"]; !ok {
		errs = append(errs, fmt.Errorf("spell.diminishing.curves needs a default curve: %w", ErrInvalidConfig))
	}
	for name, curve := range s.Diminishing.Curves {
		if err := validateCurve(curve); err != nil {
			errs = append(errs, fmt.Errorf("spell.diminishing.curves.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// validateCurve requires a non-empty, non-increasing list in (0, 1].
func validateCurve(curve []float64) error {
	if len(curve) == 0 {
		return fmt.Errorf("empty curve: %w", ErrInvalidConfig)
	}
	prev := 1.0
	for i, v := range curve {
		if v <= 0 || v > 1 {
			return fmt.Errorf("level %d multiplier %v outside (0,1]: %w", i+1, v, ErrInvalidConfig)
		}
		if v > prev {
			return fmt.Errorf("level %d multiplier %v increases: %w", i+1, v, ErrInvalidConfig)
		}
		prev = v
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (c Engine) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
