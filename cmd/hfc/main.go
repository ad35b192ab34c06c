/*
Hfc compiles hyperscript-family source into a runtime bundle or, with
-repl, opens an interactive prompt for trying command fragments against
the command codegen.

Usage:

	hfc [flags]
	hfc [flags] -config FILE

Hfc reads a bundle config (JSON or TOML) describing which commands/blocks a
project wants, assembles a runtime module from it, and writes the result to
the config's configured output path (or -out, if given).

The flags are:

	-v, --version
		Give the current version of hyperfixi and then exit.

	-c, --config FILE
		Use the provided bundle config file (JSON or TOML, detected by
		extension). Defaults to "hyperfixi.toml" in the current directory.

	-o, --out FILE
		Write the assembled bundle to FILE instead of the config's own
		Output setting.

	-r, --repl
		Start an interactive command REPL instead of assembling a
		bundle. Each line is parsed as hyperscript statements; the
		generated JS of each top-level command is printed back, and other
		statements (such as event handlers) get a note instead.

Grounded on cmd/tqi/main.go's pflag-bound-package-vars/returnCode/deferred-
recover shape.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/codetalcott/hyperfixi/internal/bundle"
	"github.com/codetalcott/hyperfixi/internal/codegen"
	"github.com/codetalcott/hyperfixi/internal/hscript"
	"github.com/codetalcott/hyperfixi/internal/input"
	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/codetalcott/hyperfixi/internal/lex"
	"github.com/codetalcott/hyperfixi/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConfigError indicates an unsuccessful execution due to a problem
	// loading or validating the bundle config.
	ExitConfigError

	// ExitAssembleError indicates an unsuccessful execution due to a
	// problem assembling the bundle.
	ExitAssembleError

	// ExitIOError indicates an unsuccessful execution due to a problem
	// reading or writing a file.
	ExitIOError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "hyperfixi.toml", "The bundle config file (JSON or TOML) to assemble from")
	outFile     *string = pflag.StringP("out", "o", "", "Write the assembled bundle to this file instead of the config's Output setting")
	replMode    *bool   = pflag.BoolP("repl", "r", false, "Start an interactive command REPL instead of assembling a bundle")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *replMode {
		runREPL()
		return
	}

	runAssemble()
}

func runAssemble() {
	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	result, err := bundle.Assemble(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitAssembleError
		return
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", w)
	}

	out := *outFile
	if out == "" {
		out = cfg.FillDefaults().Output
	}

	if err := os.WriteFile(out, []byte(result.Code), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not write %s: %s\n", out, err.Error())
		returnCode = ExitIOError
		return
	}
}

// loadConfig decodes a bundle.Config from a TOML or JSON file, detected by
// the ".json" extension (anything else is treated as TOML, matching
// server/config.go's BurntSushi/toml-first convention).
func loadConfig(path string) (bundle.Config, error) {
	var cfg bundle.Config

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// runREPL starts an interactive loop: each line is parsed and lowered to
// JS through lex -> hscript -> interchange -> codegen (hfcd's /analyze
// endpoint drives the same stages up to interchange, without codegen), so
// a user can sanity-check how one command lowers before committing it to
// a bundle. Uses
// internal/input's readline-backed reader when stdin is a TTY and its
// plain-pipe reader otherwise, so piped REPL input (e.g. from a script)
// works the same as typed input.
func runREPL() {
	var reader input.LineReader
	if fi, err := os.Stdin.Stat(); err == nil && (fi.Mode()&os.ModeCharDevice) != 0 {
		ilr, err := input.NewInteractiveReader("hfc> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not start REPL: %s\n", err.Error())
			returnCode = ExitIOError
			return
		}
		reader = ilr
	} else {
		reader = input.NewPipeReader(os.Stdin)
	}
	defer reader.Close()

	ctx := codegen.NewContext("repl")
	reg := codegen.NewRegistry()

	for {
		line, err := reader.ReadLine()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		toks := lex.Tokenize(line)
		stmts, err := hscript.Parse(toks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "syntax error: %s\n", err.Error())
			continue
		}

		for _, stmt := range stmts {
			node := interchange.FromCore(stmt)
			printLowered(reg, ctx, node)
		}
	}
}

func printLowered(reg *codegen.Registry, ctx *codegen.Context, node interchange.Node) {
	switch n := node.(type) {
	case *interchange.Command:
		gen := reg.Generate(ctx, n)
		if gen == nil {
			fmt.Println("// (no generator for this command)")
			return
		}
		fmt.Println(gen.Code)
	default:
		fmt.Printf("// %T is not a command; use a bundle to compile full handlers\n", n)
	}
}
