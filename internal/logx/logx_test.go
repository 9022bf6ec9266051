package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epidraw.log")
	logger, closeFn, err := New("debug", path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("spectrum ready", "points", 100)
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"spectrum ready", "points=100", "prefix=epidraw"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got %q", want, out)
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epidraw.log")
	logger, closeFn, err := New("warn", path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hidden")
	closeFn()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("expected info to be filtered at warn level, got %q", data)
	}
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closeFn, err := New("", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Error("nowhere")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("chatty", ""); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}
