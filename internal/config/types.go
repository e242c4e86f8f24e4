// Package config provides configuration management for the SmartCalc CLI
// and REPL. Configuration is loaded from TOML files with embedded
// defaults, mirroring the teacher's cmd/calcmark/config package.
package config

// Config is the root CLI-layer configuration structure. It is distinct
// from (and feeds) the core's config.Config: this struct is what a user
// edits on disk; core/config.Default() overlaid by CoreConfig (overlay.go)
// is what the evaluation pipeline actually consumes.
type Config struct {
	Language string         `mapstructure:"language"`
	Currency CurrencyConfig `mapstructure:"currency"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Output   OutputConfig   `mapstructure:"output"`
}

// CurrencyConfig overrides/extends the core's built-in FX table.
type CurrencyConfig struct {
	// Rates maps an ISO-4217 code to its rate versus the core's base
	// currency (USD). Entries here override or add to the built-in table.
	Rates map[string]float64 `mapstructure:"rates"`
}

// TUIConfig holds REPL-specific settings.
type TUIConfig struct {
	Theme    ThemeConfig `mapstructure:"theme"`
	DarkMode bool        `mapstructure:"dark_mode"`
}

// ThemeConfig defines REPL colors as hex strings, consumed by lipgloss.
type ThemeConfig struct {
	Primary string `mapstructure:"primary"` // prompt, variable names
	Accent  string `mapstructure:"accent"`  // borders, highlights
	Error   string `mapstructure:"error"`   // error messages
	Muted   string `mapstructure:"muted"`   // help text
	Output  string `mapstructure:"output"`  // calculation results
}

// OutputConfig holds result-formatting settings.
type OutputConfig struct {
	Verbose       bool `mapstructure:"verbose"`
	DecimalPlaces int  `mapstructure:"decimal_places"`
}
