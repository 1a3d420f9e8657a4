// Package config loads gopyramid settings from defaults, an optional YAML
// file and GOPYR_ environment variables, in increasing precedence. Command
// line flags override the loaded values in cmd.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/experiment"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. GOPYR_SWEEP_WORKERS.
const EnvPrefix = "GOPYR"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Sweep SweepConfig `mapstructure:"sweep"`
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is console or json
	Format string `mapstructure:"format"`
}

// SweepConfig configures the sweep experiment.
type SweepConfig struct {
	MinBaseLength   int     `mapstructure:"min_base_length"`
	MaxBaseLength   int     `mapstructure:"max_base_length"`
	MinHeight       int     `mapstructure:"min_height"`
	MaxHeight       int     `mapstructure:"max_height"`
	MinHeightToBase float64 `mapstructure:"min_height_to_base"`
	MaxHeightToBase float64 `mapstructure:"max_height_to_base"`
	MinVolume       float64 `mapstructure:"min_volume"`
	MaxVolume       float64 `mapstructure:"max_volume"`
	Dedupe          bool    `mapstructure:"dedupe"`
	Workers         int     `mapstructure:"workers"`
	Top             int     `mapstructure:"top"`

	// Targets are constant names understood by constants.Lookup.
	Targets []string `mapstructure:"targets"`

	Reference ReferenceConfig `mapstructure:"reference"`

	// Layout is "final" or "legacy".
	Layout string `mapstructure:"layout"`

	// Division selects the divide-by-factor search convention.
	Division bool `mapstructure:"division"`
}

// ReferenceConfig is the pyramid every candidate is compared with.
type ReferenceConfig struct {
	BaseLength int `mapstructure:"base_length"`
	Height     int `mapstructure:"height"`
}

// Load reads configuration. If path is empty the file "gopyramid.yaml" is
// looked up in ".", "./configs" and "$HOME/.gopyramid"; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gopyramid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.gopyramid")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads the configuration and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("sweep.min_base_length", experiment.DefaultMinBaseLength)
	v.SetDefault("sweep.max_base_length", experiment.DefaultMaxBaseLength)
	v.SetDefault("sweep.min_height", experiment.DefaultMinHeight)
	v.SetDefault("sweep.max_height", experiment.DefaultMaxHeight)
	v.SetDefault("sweep.min_height_to_base", experiment.DefaultMinHeightToBase)
	v.SetDefault("sweep.max_height_to_base", experiment.DefaultMaxHeightToBase)
	v.SetDefault("sweep.min_volume", 0.0)
	v.SetDefault("sweep.max_volume", 0.0)
	v.SetDefault("sweep.dedupe", true)
	v.SetDefault("sweep.workers", 0)
	v.SetDefault("sweep.top", experiment.DefaultTopN)
	v.SetDefault("sweep.targets", []string{"pi", "phi", "e"})
	v.SetDefault("sweep.reference.base_length", experiment.Khufu.BaseLength)
	v.SetDefault("sweep.reference.height", experiment.Khufu.Height)
	v.SetDefault("sweep.layout", "final")
	v.SetDefault("sweep.division", false)
}

// Options converts the sweep section into experiment options and validates
// them.
func (s SweepConfig) Options() (experiment.Options, error) {
	targets, err := constants.LookupAll(s.Targets)
	if err != nil {
		return experiment.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	layout, ok := pyramid.LayoutByName(s.Layout)
	if !ok {
		return experiment.Options{}, fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, s.Layout)
	}

	opts := experiment.Options{
		MinBaseLength:   s.MinBaseLength,
		MaxBaseLength:   s.MaxBaseLength,
		MinHeight:       s.MinHeight,
		MaxHeight:       s.MaxHeight,
		MinHeightToBase: s.MinHeightToBase,
		MaxHeightToBase: s.MaxHeightToBase,
		MinVolume:       s.MinVolume,
		MaxVolume:       s.MaxVolume,
		Dedupe:          s.Dedupe,
		Workers:         s.Workers,
		TopN:            s.Top,
		Targets:         targets,
		Reference:       experiment.Candidate{BaseLength: s.Reference.BaseLength, Height: s.Reference.Height},
		Layout:          layout,
		Division:        s.Division,
	}

	if err := opts.Validate(); err != nil {
		return experiment.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}
