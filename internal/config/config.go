package config

// Config is the whole project configuration.
type Config struct {
	Render RenderConfig `toml:"render" yaml:"render"`
	Parse  ParseConfig  `toml:"parse" yaml:"parse"`
	Trace  TraceConfig  `toml:"trace" yaml:"trace"`
}

// RenderConfig controls diagnostic output.
type RenderConfig struct {
	Format         string `toml:"format" yaml:"format"`
	Color          string `toml:"color" yaml:"color"`
	Context        int    `toml:"context" yaml:"context"`
	PathMode       string `toml:"path_mode" yaml:"path_mode"`
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics"`
	Width          int    `toml:"width" yaml:"width"`
	ShowNotes      bool   `toml:"show_notes" yaml:"show_notes"`
}

// ParseConfig controls the engine and the driver.
type ParseConfig struct {
	// MaxDepth bounds rule nesting; 0 disables the check.
	MaxDepth   int    `toml:"max_depth" yaml:"max_depth"`
	SkipTrivia bool   `toml:"skip_trivia" yaml:"skip_trivia"`
	Jobs       int    `toml:"jobs" yaml:"jobs"`
	Cache      bool   `toml:"cache" yaml:"cache"`
	CacheDir   string `toml:"cache_dir" yaml:"cache_dir"`
}

// TraceConfig mirrors the --trace* flags.
type TraceConfig struct {
	Level    string `toml:"level" yaml:"level"`
	Mode     string `toml:"mode" yaml:"mode"`
	Output   string `toml:"output" yaml:"output"`
	RingSize int    `toml:"ring_size" yaml:"ring_size"`
}
