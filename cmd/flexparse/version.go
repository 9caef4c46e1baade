package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flexparse/internal/version"
)

const versionTagline = "every failure, down to the byte"

// versionFields selects the optional build metadata to print.
type versionFields struct {
	hash, message, date bool
}

func (f versionFields) any() bool { return f.hash || f.message || f.date }

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show flexparse build fingerprints",
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()
	full, _ := fs.GetBool("full")
	var fields versionFields
	fields.hash, _ = fs.GetBool("hash")
	fields.message, _ = fs.GetBool("message")
	fields.date, _ = fs.GetBool("date")
	if full {
		fields = versionFields{hash: true, message: true, date: true}
	}

	format, _ := fs.GetString("format")
	info := version.Current()
	switch strings.ToLower(format) {
	case "json":
		return writeVersionJSON(cmd.OutOrStdout(), info, fields)
	case "pretty":
		writeVersionPretty(cmd.OutOrStdout(), info, fields, useColor(configFrom(cmd).Render.Color, os.Stdout))
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

func writeVersionPretty(out io.Writer, info version.Info, fields versionFields, colored bool) {
	shown := info.Version
	if colored {
		// Colorize смотрит на глобальный color.NoColor
		prev := color.NoColor
		color.NoColor = false
		shown = version.Colorize(shown)
		color.NoColor = prev
	}
	fmt.Fprintf(out, "flexparse %s: %s\n", shown, versionTagline)
	rows := []struct {
		on           bool
		label, value string
	}{
		{fields.hash, "commit: ", info.GitCommit},
		{fields.message, "message:", info.GitMessage},
		{fields.date, "built:  ", info.BuildDate},
	}
	for _, r := range rows {
		if r.on {
			fmt.Fprintf(out, "%s %s\n", r.label, orUnknown(r.value))
		}
	}
	if !fields.any() {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func writeVersionJSON(out io.Writer, info version.Info, fields versionFields) error {
	payload := struct {
		Tool    string `json:"tool"`
		Tagline string `json:"tagline"`
		version.Info
	}{Tool: "flexparse", Tagline: versionTagline}
	payload.Version = info.Version
	if fields.hash {
		payload.GitCommit = orUnknown(info.GitCommit)
	}
	if fields.message {
		payload.GitMessage = orUnknown(info.GitMessage)
	}
	if fields.date {
		payload.BuildDate = orUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
