package bundle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/hferrors"
)

// Result is a completed assembly: the emitted module source plus the
// selections and diagnostics that produced it, per spec.md §6's bundle
// config schema output shape.
type Result struct {
	Code       string
	Commands   []string
	Blocks     []string
	Positional bool
	Warnings   []string
	Errors     []string
}

// Assemble builds a runtime module from cfg, per spec.md §4.10. Invalid
// command/block names are either dropped-with-warning (default mode) or
// fail the assembly outright (strict mode).
func Assemble(cfg Config) (*Result, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, hferrors.Wrap(err, hferrors.CodeCompileError, "invalid bundle config: "+err.Error(), "")
	}

	res := &Result{Positional: cfg.PositionalExpressions}

	commands, cmdWarnings, err := filterNames(cfg.Commands, knownCommands, "unknown-command", cfg.Validation.Strict)
	if err != nil {
		return nil, err
	}
	blocks, blockWarnings, err := filterNames(cfg.Blocks, knownBlocks, "unknown-block", cfg.Validation.Strict)
	if err != nil {
		return nil, err
	}
	res.Commands = commands
	res.Blocks = blocks
	res.Warnings = append(cmdWarnings, blockWarnings...)

	var b strings.Builder
	writeBanner(&b, cfg, commands, blocks)
	writeParserTemplate(&b, cfg, commands, blocks)
	writeCommandImplementations(&b, commands)
	writeBlockImplementations(&b, blocks)
	writeHelpers(&b, commands)
	writeDispatcher(&b, cfg)
	if cfg.AutoInit {
		writeAutoInit(&b, cfg)
	}

	code := b.String()
	if cfg.Format == FormatUntyped {
		code = stripTypes(code)
	}
	res.Code = code

	return res, nil
}

// filterNames splits names into the subset present in table; in strict
// mode any absent name fails the assembly, in default mode it is dropped
// and reported as a warning (spec.md §4.10's Validation rule).
func filterNames(names []string, table map[string]bool, errCode string, strict bool) ([]string, []string, error) {
	var kept, warnings []string
	for _, n := range names {
		if table[n] {
			kept = append(kept, n)
			continue
		}
		if strict {
			return nil, nil, hferrors.New(hferrors.Code(errCode), fmt.Sprintf("%s: %q is not a known capability", errCode, n), "")
		}
		warnings = append(warnings, fmt.Sprintf("dropped unknown entry %q (%s)", n, errCode))
	}
	sort.Strings(kept)
	return kept, warnings, nil
}

func writeBanner(b *strings.Builder, cfg Config, commands, blocks []string) {
	fmt.Fprintf(b, "// %s — generated hyperfixi runtime bundle\n", cfg.Name)
	fmt.Fprintf(b, "// commands: %s\n", strings.Join(commands, ", "))
	fmt.Fprintf(b, "// blocks: %s\n", strings.Join(blocks, ", "))
	fmt.Fprintf(b, "// positional expressions: %t\n\n", cfg.PositionalExpressions)
}

func writeParserTemplate(b *strings.Builder, cfg Config, commands, blocks []string) {
	if liteFeasible(cfg) {
		b.WriteString(liteParserTemplate)
		return
	}
	b.WriteString(hybridParserTemplate)
}

func writeCommandImplementations(b *strings.Builder, commands []string) {
	b.WriteString("\nconst COMMANDS = {\n")
	for _, c := range commands {
		impl, ok := commandTemplates[c]
		if !ok {
			impl = fmt.Sprintf("  %s(ctx) { /* no template registered */ },\n", jsIdent(c))
		}
		b.WriteString(impl)
	}
	b.WriteString("};\n")
}

func writeBlockImplementations(b *strings.Builder, blocks []string) {
	if len(blocks) == 0 {
		return
	}
	b.WriteString("\nconst BLOCKS = {\n")
	for _, blk := range blocks {
		impl, ok := blockTemplates[blk]
		if !ok {
			continue
		}
		b.WriteString(impl)
	}
	b.WriteString("};\n")
}

func writeHelpers(b *strings.Builder, commands []string) {
	helpers := helperClosure(commands)
	if len(helpers) == 0 {
		return
	}
	sort.Strings(helpers)
	b.WriteString("\nconst helpers = {\n")
	for _, h := range helpers {
		fmt.Fprintf(b, "  %s: runtimeHelpers.%s,\n", h, h)
	}
	b.WriteString("};\n")
}

func writeDispatcher(b *strings.Builder, cfg Config) {
	fmt.Fprintf(b, "\nwindow.%s = { process, parse, compile, behaviors: {}, globals: new Map()", jsIdent(cfg.GlobalName))
	if cfg.HtmxIntegration {
		b.WriteString(", afterSettle: (evt) => process(evt.detail.target)")
	}
	b.WriteString(" };\n")
}

func writeAutoInit(b *strings.Builder, cfg Config) {
	fmt.Fprintf(b, "\ndocument.addEventListener('DOMContentLoaded', () => window.%s.process(document.body));\n", jsIdent(cfg.GlobalName))
}

func jsIdent(s string) string {
	return strings.NewReplacer("-", "_").Replace(s)
}
