// Package config loads epidraw settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/olivier-w/epidraw/internal/fourier"
	"github.com/olivier-w/epidraw/internal/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Name is the config file base name and the env prefix source.
	Name      = "epidraw"
	EnvPrefix = "EPIDRAW"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of a drawing session.
type Config struct {
	Points       int     `mapstructure:"points" yaml:"points"`
	AnimationHz  float64 `mapstructure:"animation_hz" yaml:"animation_hz"`
	RotationHz   float64 `mapstructure:"rotation_hz" yaml:"rotation_hz"`
	TrailDamping float64 `mapstructure:"trail_damping" yaml:"trail_damping"`
	// Frequencies below zero means "same as Points".
	Frequencies int     `mapstructure:"frequencies" yaml:"frequencies"`
	FollowScale float64 `mapstructure:"follow_scale" yaml:"follow_scale"`
	FFT         string  `mapstructure:"fft" yaml:"fft"`
	LogLevel    string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string  `mapstructure:"log_file" yaml:"log_file"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("points", 100)
	v.SetDefault("animation_hz", 25.0)
	v.SetDefault("rotation_hz", 0.05)
	v.SetDefault("trail_damping", 0.98)
	v.SetDefault("frequencies", -1)
	v.SetDefault("follow_scale", 2.0)
	v.SetDefault("fft", "dsp")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// NewViper returns a viper instance with defaults, env lookup and the
// config search path set up. An explicit file overrides the search path.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
		v.AddConfigPath("./configs")
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if one exists. A missing file in the
// search path is not an error; a missing explicit file is.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// LoadDotEnv copies variables from a .env file into the environment without
// overriding ones already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// key maps a flag name to its config key.
func key(flag string) string { return strings.ReplaceAll(flag, "-", "_") }

// BindFlags binds each flag to its config key so an explicitly set flag
// wins over env and file values.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		if err := v.BindPFlag(key(f.Name), f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	if c.Frequencies < 0 {
		c.Frequencies = c.Points
	}
	c.FFT = strings.ToLower(strings.TrimSpace(c.FFT))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, field, fmt.Sprintf(format, args...))
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Points < 1:
		return invalid("points", "must be at least 1, got %d", c.Points)
	case c.AnimationHz <= 0:
		return invalid("animation_hz", "must be positive, got %g", c.AnimationHz)
	case c.RotationHz <= 0:
		return invalid("rotation_hz", "must be positive, got %g", c.RotationHz)
	case c.TrailDamping <= 0 || c.TrailDamping > 1:
		return invalid("trail_damping", "must be in (0, 1], got %g", c.TrailDamping)
	case c.Frequencies < 0 || c.Frequencies > c.Points:
		return invalid("frequencies", "must be in [0, %d], got %d", c.Points, c.Frequencies)
	case c.FollowScale <= 0:
		return invalid("follow_scale", "must be positive, got %g", c.FollowScale)
	case c.FFT != "" && !slices.Contains(fourier.Transforms(), c.FFT):
		return invalid("fft", "must be one of %s, got %q", strings.Join(fourier.Transforms(), ", "), c.FFT)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return invalid("log_level", "%v", err)
		}
	}
	return nil
}

// SessionOptions builds the options for a drawing session.
func (c Config) SessionOptions() (session.Options, error) {
	t, err := fourier.NewTransform(c.FFT)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Points:       c.Points,
		AnimationHz:  c.AnimationHz,
		RotationHz:   c.RotationHz,
		TrailDamping: c.TrailDamping,
		Frequencies:  c.Frequencies,
		FollowScale:  c.FollowScale,
		Transform:    t,
	}, nil
}

// YAML renders the config in the file format ReadFile accepts.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
