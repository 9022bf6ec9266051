package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Points:       100,
		AnimationHz:  25,
		RotationHz:   0.05,
		TrailDamping: 0.98,
		Frequencies:  100,
		FollowScale:  2,
		FFT:          "dsp",
		LogLevel:     "info",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRejects(t *testing.T) {
	base := Config{Points: 10, AnimationHz: 25, RotationHz: 0.05, TrailDamping: 0.7, Frequencies: 10, FollowScale: 2, FFT: "gonum"}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected base config to validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no points", func(c *Config) { c.Points = 0 }},
		{"zero animation rate", func(c *Config) { c.AnimationHz = 0 }},
		{"negative rotation rate", func(c *Config) { c.RotationHz = -1 }},
		{"zero damping", func(c *Config) { c.TrailDamping = 0 }},
		{"damping above one", func(c *Config) { c.TrailDamping = 1.5 }},
		{"too many frequencies", func(c *Config) { c.Frequencies = 11 }},
		{"negative frequencies", func(c *Config) { c.Frequencies = -1 }},
		{"zero follow scale", func(c *Config) { c.FollowScale = 0 }},
		{"unknown transform", func(c *Config) { c.FFT = "fftw" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestFileEnvAndFlagsLayer(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "epidraw.yaml")
	if err := os.WriteFile(file, []byte("points: 64\nrotation_hz: 0.1\nfft: gonum\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EPIDRAW_ROTATION_HZ", "0.2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("points", 100, "")
	fs.Float64("trail-damping", 0.98, "")
	if err := fs.Parse([]string{"--trail-damping=0.7"}); err != nil {
		t.Fatal(err)
	}

	v := NewViper(file)
	if err := ReadFile(v); err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if err := BindFlags(fs, v); err != nil {
		t.Fatalf("BindFlags() error = %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Points != 64 {
		t.Fatalf("expected file value for points, got %d", c.Points)
	}
	if c.RotationHz != 0.2 {
		t.Fatalf("expected env to override file for rotation_hz, got %g", c.RotationHz)
	}
	if c.TrailDamping != 0.7 {
		t.Fatalf("expected flag value for trail_damping, got %g", c.TrailDamping)
	}
	if c.FFT != "gonum" {
		t.Fatalf("expected fft from file, got %q", c.FFT)
	}
	if c.Frequencies != 64 {
		t.Fatalf("expected frequencies to follow points, got %d", c.Frequencies)
	}
}

func TestMissingExplicitFileIsAnError(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	if err := ReadFile(v); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("EPIDRAW_POINTS=32\nEPIDRAW_FFT=gonum\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EPIDRAW_FFT", "dsp")
	t.Setenv("EPIDRAW_POINTS", "")
	os.Unsetenv("EPIDRAW_POINTS")

	if err := LoadDotEnv(file); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("EPIDRAW_POINTS"); got != "32" {
		t.Fatalf("expected EPIDRAW_POINTS from .env, got %q", got)
	}
	if got := os.Getenv("EPIDRAW_FFT"); got != "dsp" {
		t.Fatalf("expected the environment to win, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected a missing .env to be ignored, got %v", err)
	}
}

func TestYAMLRoundTripsThroughViper(t *testing.T) {
	want := Config{Points: 12, AnimationHz: 30, RotationHz: 0.5, TrailDamping: 0.7, Frequencies: 3, FollowScale: 4, FFT: "gonum", LogLevel: "debug"}
	data, err := want.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	file := filepath.Join(t.TempDir(), "epidraw.yaml")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}
	v := NewViper(file)
	if err := ReadFile(v); err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionOptions(t *testing.T) {
	c := Config{Points: 50, AnimationHz: 30, RotationHz: 0.1, TrailDamping: 0.9, Frequencies: 5, FollowScale: 3, FFT: "gonum"}
	opts, err := c.SessionOptions()
	if err != nil {
		t.Fatalf("SessionOptions() error = %v", err)
	}
	if opts.Transform.Name() != "gonum" {
		t.Fatalf("expected gonum transform, got %q", opts.Transform.Name())
	}
	if opts.Points != 50 || opts.Frequencies != 5 || opts.FollowScale != 3 {
		t.Fatalf("unexpected options %+v", opts)
	}
}
