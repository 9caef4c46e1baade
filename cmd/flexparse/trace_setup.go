package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"flexparse/internal/config"
	"flexparse/internal/trace"
)

var (
	traceCleanup func()
	cleanupOnce  sync.Once
	// activeRing keeps the ring tracer so a panic can still dump it.
	activeRing *trace.RingTracer
)

// setupTracing builds the tracer from the merged configuration and attaches
// it to the command context. The heartbeat interval is flag-only.
func setupTracing(cmd *cobra.Command, cfg *config.Config) error {
	heartbeatInterval, err := cmd.Root().PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(cfg.Trace.Level)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}

	// Трассировка выключена
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		traceCleanup = func() {}
		return nil
	}

	mode, err := trace.ParseMode(cfg.Trace.Mode)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: cfg.Trace.Output,
		RingSize:   cfg.Trace.RingSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeRing, _ = trace.RingOf(tracer)

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	traceCleanup = func() {
		heartbeat.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return nil
}

// finishRun flushes tracing once, whichever path ends the command.
func finishRun(cmd *cobra.Command) {
	cleanupOnce.Do(func() {
		if traceCleanup != nil {
			traceCleanup()
		}
	})
}

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if activeRing != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n--- last %d trace events ---\n", r, activeRing.Len())
		_ = activeRing.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
