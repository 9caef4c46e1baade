// Package config loads the flexparse project file.
//
// A project is configured by flexparse.toml or flexparse.yaml, found by
// walking up from the working directory. Values are applied over defaults and
// validated as a whole; command-line flags override them afterwards.
//
//	[render]
//	format = "pretty"      # pretty|plain|json|sarif|short
//	color = "auto"         # auto|on|off
//	context = 1
//	path_mode = "relative" # auto|absolute|relative|basename
//	max_diagnostics = 50
//
//	[parse]
//	max_depth = 256
//	skip_trivia = true
//	jobs = 0               # 0 - по числу CPU
//	cache = true
//
//	[trace]
//	level = "off"
//	mode = "ring"
//	output = "-"
package config
