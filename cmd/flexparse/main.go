package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flexparse/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "flexparse",
	Short: "Parser combinators with precise diagnostics",
	Long: `flexparse runs combinator grammars over text or token streams and
reports every failure with exact source spans`,
	SilenceUsage:      true,
	PersistentPreRunE: prepareRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		finishRun(cmd)
	},
}

// main registers subcommands and global flags, then runs the root command.
// Any error from the command ends the process with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to flexparse.toml or flexparse.yaml (default: discovered upwards)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "print how long each stage took")
	rootCmd.PersistentFlags().Int("max-diagnostics", 50, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat every interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves auto|on|off against the file the output goes to.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
