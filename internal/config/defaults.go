package config

// Default values for configuration fields.
const (
	DefaultFormat         = "pretty"
	DefaultColor          = "auto"
	DefaultContext        = 1
	DefaultPathMode       = "relative"
	DefaultMaxDiagnostics = 50
	DefaultShowNotes      = true

	DefaultMaxDepth   = 256
	DefaultSkipTrivia = true
	DefaultCache      = false

	DefaultTraceLevel    = "off"
	DefaultTraceMode     = "ring"
	DefaultTraceOutput   = "-"
	DefaultTraceRingSize = 4096
)

// Default returns a configuration holding only defaults.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Format:         DefaultFormat,
			Color:          DefaultColor,
			Context:        DefaultContext,
			PathMode:       DefaultPathMode,
			MaxDiagnostics: DefaultMaxDiagnostics,
			ShowNotes:      DefaultShowNotes,
		},
		Parse: ParseConfig{
			MaxDepth:   DefaultMaxDepth,
			SkipTrivia: DefaultSkipTrivia,
			Cache:      DefaultCache,
		},
		Trace: TraceConfig{
			Level:    DefaultTraceLevel,
			Mode:     DefaultTraceMode,
			Output:   DefaultTraceOutput,
			RingSize: DefaultTraceRingSize,
		},
	}
}
