package main

import (
	"testing"

	"github.com/spf13/pflag"

	"flexparse/internal/config"
)

func newGlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("flexparse", pflag.ContinueOnError)
	fs.String("color", "auto", "")
	fs.Int("max-diagnostics", 50, "")
	fs.String("trace", "", "")
	fs.String("trace-level", "off", "")
	fs.String("trace-mode", "ring", "")
	fs.Int("trace-ring-size", 4096, "")
	return fs
}

func TestApplyGlobalFlagsOnlyOverridesChanged(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Color = "off"
	cfg.Trace.Level = "phase"

	fs := newGlobalFlags()
	if err := fs.Parse([]string{"--max-diagnostics", "7", "--trace-mode", "stream"}); err != nil {
		t.Fatal(err)
	}
	if err := applyGlobalFlags(cfg, fs); err != nil {
		t.Fatalf("applyGlobalFlags: %v", err)
	}

	if cfg.Render.MaxDiagnostics != 7 {
		t.Errorf("MaxDiagnostics = %d, want 7", cfg.Render.MaxDiagnostics)
	}
	if cfg.Trace.Mode != "stream" {
		t.Errorf("Trace.Mode = %q, want stream", cfg.Trace.Mode)
	}
	// не заданные флаги не трогают конфиг
	if cfg.Render.Color != "off" {
		t.Errorf("Color = %q, want value from config", cfg.Render.Color)
	}
	if cfg.Trace.Level != "phase" {
		t.Errorf("Trace.Level = %q, want value from config", cfg.Trace.Level)
	}
}

func TestApplyCheckFlags(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
		fs.String("format", config.DefaultFormat, "")
		fs.String("path-mode", config.DefaultPathMode, "")
		fs.Int("context", config.DefaultContext, "")
		fs.Int("jobs", 0, "")
		fs.Bool("cache", false, "")
		return fs
	}

	t.Run("overrides", func(t *testing.T) {
		cfg := config.Default()
		fs := newFlags()
		if err := fs.Parse([]string{"--format", "sarif", "--jobs", "3", "--cache"}); err != nil {
			t.Fatal(err)
		}
		if err := applyCheckFlags(cfg, fs); err != nil {
			t.Fatalf("applyCheckFlags: %v", err)
		}
		if cfg.Render.Format != "sarif" || cfg.Parse.Jobs != 3 || !cfg.Parse.Cache {
			t.Fatalf("unexpected config: %+v %+v", cfg.Render, cfg.Parse)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		cfg := config.Default()
		fs := newFlags()
		if err := fs.Parse([]string{"--format", "xml"}); err != nil {
			t.Fatal(err)
		}
		if err := applyCheckFlags(cfg, fs); err == nil {
			t.Fatal("expected validation error for --format xml")
		}
	})
}
