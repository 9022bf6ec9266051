package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/olivier-w/epidraw/internal/config"
)

func execute(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var got config.Config
	cmd := newRootCmd(func(_ context.Context, cfg config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return got, err
}

func TestRootCommandDefaults(t *testing.T) {
	cfg, err := execute(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.Points != 100 || cfg.Frequencies != 100 || cfg.FFT != "dsp" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestRootCommandFlags(t *testing.T) {
	cfg, err := execute(t, "--points=64", "--fft=gonum", "--trail-damping=0.7", "--frequencies=5")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.Points != 64 || cfg.FFT != "gonum" || cfg.TrailDamping != 0.7 || cfg.Frequencies != 5 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestRootCommandEnv(t *testing.T) {
	t.Setenv("EPIDRAW_ROTATION_HZ", "0.25")
	cfg, err := execute(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.RotationHz != 0.25 {
		t.Fatalf("expected rotation_hz from env, got %g", cfg.RotationHz)
	}
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	if _, err := execute(t, "--trail-damping=2"); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := execute(t, "stray"); err == nil {
		t.Fatal("expected positional arguments to be rejected")
	}
}

func TestConfigCommandPrintsYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	called := false
	cmd := newRootCmd(func(context.Context, config.Config) error {
		called = true
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--points=48"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if called {
		t.Fatal("expected the config command not to start the UI")
	}
	for _, want := range []string{"points: 48", "frequencies: 48", "fft: dsp"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out.String())
		}
	}
}
