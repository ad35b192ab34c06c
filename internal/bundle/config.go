// Package bundle assembles a self-contained runtime module from a bundle
// config: the subset of commands/blocks a project wants, plus output
// format and validation policy (spec.md §4.10). Grounded on
// server/config.go's Config/FillDefaults/Validate shape.
package bundle

import "fmt"

// Format is the bundle's output flavor.
type Format string

const (
	FormatTyped   Format = "ts"
	FormatUntyped Format = "js"
)

// ValidationConfig controls how the assembler reacts to a requested
// command/block outside its capability table.
type ValidationConfig struct {
	Strict bool `toml:"strict"`
}

// Config is a bundle config, loaded from TOML via BurntSushi/toml the same
// way server/config.go's Config is intended to be loaded from its own
// settings file.
type Config struct {
	Name                  string            `toml:"name"`
	Commands              []string          `toml:"commands"`
	Blocks                []string          `toml:"blocks"`
	Output                string            `toml:"output"`
	HtmxIntegration       bool              `toml:"htmx_integration"`
	GlobalName            string            `toml:"global_name"`
	PositionalExpressions bool              `toml:"positional_expressions"`
	ParserImportPath      string            `toml:"parser_import_path"`
	AutoInit              bool              `toml:"auto_init"`
	ESModule              bool              `toml:"es_module"`
	Format                Format            `toml:"format"`
	Validation            ValidationConfig  `toml:"validation"`
	MaxLoopIterations     int               `toml:"max_loop_iterations"`
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults, per spec.md §6's bundle config schema.
func (cfg Config) FillDefaults() Config {
	out := cfg
	if out.GlobalName == "" {
		out.GlobalName = "hyperfixi"
	}
	if out.Format == "" {
		out.Format = FormatUntyped
	}
	if out.MaxLoopIterations == 0 {
		out.MaxLoopIterations = 1000
	}
	if out.Output == "" {
		out.Output = out.Name + ".bundle." + string(out.Format)
	}
	return out
}

// Validate returns an error if cfg has invalid or missing required fields.
// Call it on the result of FillDefaults so defaulted fields don't spuriously
// fail validation.
func (cfg Config) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("name: must not be empty")
	}
	if len(cfg.Commands) == 0 {
		return fmt.Errorf("commands: must list at least one command")
	}
	if cfg.Format != FormatTyped && cfg.Format != FormatUntyped {
		return fmt.Errorf("format: must be %q or %q, got %q", FormatTyped, FormatUntyped, cfg.Format)
	}
	if cfg.MaxLoopIterations < 0 {
		return fmt.Errorf("max_loop_iterations: must not be negative")
	}
	return nil
}
