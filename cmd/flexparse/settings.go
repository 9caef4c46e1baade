package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"flexparse/internal/config"
)

type configKey struct{}

// errReported ends a command whose diagnostics are already printed.
var errReported = errors.New("diagnostics reported")

// prepareRun loads the project configuration, applies global flag overrides
// and starts tracing. It runs before every subcommand.
func prepareRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyGlobalFlags(cfg, cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
	return setupTracing(cmd, cfg)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, _, err := config.Discover(wd)
	return cfg, err
}

// configFrom returns the configuration prepareRun stored on the command.
func configFrom(cmd *cobra.Command) *config.Config {
	if cmd.Context() != nil {
		if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.Default()
}

// applyGlobalFlags overrides cfg with the root flags the user actually set.
func applyGlobalFlags(cfg *config.Config, fs *pflag.FlagSet) error {
	if err := overrideString(fs, "color", &cfg.Render.Color); err != nil {
		return err
	}
	if err := overrideInt(fs, "max-diagnostics", &cfg.Render.MaxDiagnostics); err != nil {
		return err
	}
	if err := overrideString(fs, "trace", &cfg.Trace.Output); err != nil {
		return err
	}
	if err := overrideString(fs, "trace-level", &cfg.Trace.Level); err != nil {
		return err
	}
	if err := overrideString(fs, "trace-mode", &cfg.Trace.Mode); err != nil {
		return err
	}
	return overrideInt(fs, "trace-ring-size", &cfg.Trace.RingSize)
}

func overrideString(fs *pflag.FlagSet, name string, dst *string) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideInt(fs *pflag.FlagSet, name string, dst *int) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideBool(fs *pflag.FlagSet, name string, dst *bool) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

// failReported flushes tracing and silences cobra: PersistentPostRun is
// skipped when RunE returns an error.
func failReported(cmd *cobra.Command) error {
	finishRun(cmd)
	cmd.SilenceErrors = true
	return errReported
}
