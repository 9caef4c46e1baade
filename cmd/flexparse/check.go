package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"flexparse/internal/config"
	"flexparse/internal/driver"
	"flexparse/internal/grammar"
	"flexparse/internal/observ"
	"flexparse/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Parse files and report diagnostics",
	Long: `Check parses every file (directories are searched for known extensions)
with the grammar its extension selects, prints results and diagnostics, and
exits with status 1 when any error was reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", config.DefaultFormat, "output format (pretty|plain|json|sarif|short)")
	checkCmd.Flags().String("grammar", "", "force a grammar ("+strings.Join(grammar.Names(), "|")+")")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Var(new(progressMode), "ui", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("cache", config.DefaultCache, "reuse lexed tokens from the on-disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the token cache before checking")
	checkCmd.Flags().String("path-mode", config.DefaultPathMode, "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().Int("context", config.DefaultContext, "source lines shown around a pretty diagnostic")
	checkCmd.Flags().Bool("results", false, "print each file's results before the diagnostics")
	checkCmd.Flags().Bool("watch", false, "re-check whenever an input file changes")
}

// applyCheckFlags overrides cfg with the check flags the user actually set.
func applyCheckFlags(cfg *config.Config, fs *pflag.FlagSet) error {
	if err := overrideString(fs, "format", &cfg.Render.Format); err != nil {
		return err
	}
	if err := overrideString(fs, "path-mode", &cfg.Render.PathMode); err != nil {
		return err
	}
	if err := overrideInt(fs, "context", &cfg.Render.Context); err != nil {
		return err
	}
	if err := overrideInt(fs, "jobs", &cfg.Parse.Jobs); err != nil {
		return err
	}
	if err := overrideBool(fs, "cache", &cfg.Parse.Cache); err != nil {
		return err
	}
	return config.Validate(cfg)
}

// checkRun is one configured check invocation; watch mode repeats it.
type checkRun struct {
	cfg         config.Config
	mode        progressMode
	opts        driver.Options
	paths       []string
	showResults bool
	showTimings bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	run, err := newCheckRun(cmd, args)
	if err != nil {
		return err
	}
	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		failed, err := run.once(cmd)
		if err != nil {
			return err
		}
		if failed {
			return failReported(cmd)
		}
		return nil
	}

	// в режиме наблюдения прогресс только мешает
	run.mode = progressOff
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	cmd.SetContext(ctx)
	if _, err := run.once(cmd); err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, "watching for changes (Ctrl-C to stop)")
	return driver.Watch(ctx, run.paths, driver.WatchOptions{
		Exts:    grammar.Extensions(),
		OnError: func(err error) { fmt.Fprintf(errOut, "watch: %v\n", err) },
	}, func() {
		fmt.Fprintln(errOut, "change detected, re-checking")
		if _, err := run.once(cmd); err != nil {
			fmt.Fprintf(errOut, "check failed: %v\n", err)
		}
	})
}

func newCheckRun(cmd *cobra.Command, args []string) (*checkRun, error) {
	run := &checkRun{cfg: *configFrom(cmd), mode: progressAuto, paths: args}
	if err := applyCheckFlags(&run.cfg, cmd.Flags()); err != nil {
		return nil, err
	}
	if len(run.paths) == 0 {
		run.paths = []string{"."}
	}
	if f := cmd.Flags().Lookup("ui"); f != nil {
		if m, ok := f.Value.(*progressMode); ok && *m != "" {
			run.mode = *m
		}
	}
	fs := cmd.Flags()
	grammarName, err := fs.GetString("grammar")
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar flag: %w", err)
	}
	clearCache, err := fs.GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if run.showResults, err = fs.GetBool("results"); err != nil {
		return nil, fmt.Errorf("failed to get results flag: %w", err)
	}
	if run.showTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg := &run.cfg
	run.opts = driver.Options{
		MaxDiagnostics: cfg.Render.MaxDiagnostics,
		MaxDepth:       cfg.Parse.MaxDepth,
		SkipTrivia:     cfg.Parse.SkipTrivia,
		Jobs:           cfg.Parse.Jobs,
	}
	if grammarName != "" {
		g, ok := grammar.Lookup(grammarName)
		if !ok {
			return nil, fmt.Errorf("unknown grammar %q (expected %s)", grammarName, strings.Join(grammar.Names(), "|"))
		}
		run.opts.Grammar = g
	}
	if cfg.Parse.Cache || clearCache {
		cache, err := driver.OpenTokenCache(cfg.Parse.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open token cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return nil, fmt.Errorf("failed to clear token cache: %w", err)
			}
		}
		if cfg.Parse.Cache {
			run.opts.Cache = cache
		}
	}
	if wd, err := os.Getwd(); err == nil {
		run.opts.BaseDir = wd
	}
	return run, nil
}

// once collects, checks and renders; failed reports error diagnostics.
func (r *checkRun) once(cmd *cobra.Command) (failed bool, err error) {
	timer := observ.NewTimer()

	collectStage := timer.Begin("collect")
	files, err := driver.CollectInputs(r.paths, grammar.Extensions())
	if err != nil {
		return false, err
	}
	timer.End(collectStage, fmt.Sprintf("%d files", len(files)))
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no input files")
		return false, nil
	}

	checkStage := timer.Begin("check")
	us, results, err := checkFiles(cmd, r.mode, files, r.opts)
	if err != nil {
		return false, fmt.Errorf("check failed: %w", err)
	}
	timer.End(checkStage, fmt.Sprintf("%d units", len(results)))

	out := cmd.OutOrStdout()
	if r.showResults {
		for i := range results {
			res := &results[i]
			for _, line := range res.Lines {
				fmt.Fprintf(out, "%s: %s\n", res.Path, line)
			}
		}
	}

	renderStage := timer.Begin("render")
	bag := driver.Merge(results)
	target := renderTarget{out: os.Stdout, format: r.cfg.Render.Format, render: r.cfg.Render, args: os.Args[1:]}
	if err := renderDiagnostics(target, bag, us); err != nil {
		return false, err
	}
	if r.cfg.Render.Format == "pretty" || r.cfg.Render.Format == "plain" {
		s := driver.Summarize(results)
		fmt.Fprintf(out, "checked %d file(s): %d failed, %d error(s), %d warning(s)\n", s.Files, s.Failed, s.Errors, s.Warnings)
	}
	timer.End(renderStage, r.cfg.Render.Format)
	if r.showTimings {
		if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
			return false, err
		}
	}
	return bag.HasErrors(), nil
}

func checkFiles(cmd *cobra.Command, mode progressMode, files []string, opts driver.Options) (*source.UnitSet, []driver.UnitResult, error) {
	if mode.enabled(len(files)) {
		return checkWithProgress(cmd.Context(), "flexparse check", files, opts)
	}
	return driver.Check(cmd.Context(), files, opts)
}
