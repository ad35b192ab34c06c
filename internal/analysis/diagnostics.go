// Package analysis holds the pure, side-effect-free tree analyses spec.md
// §6 names as the "diagnostic interface": diagnostics, symbols, hover, and
// completions over an already-built interchange tree. None of these ever
// mutate or re-parse; they only read. Grounded on internal/tunascript's
// tree-walking static checks (parser.go's "expect" mismatch detection),
// generalized from parser-embedded checks into standalone functions that
// any caller (CLI, server, editor) can run post hoc.
package analysis

import (
	"fmt"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/dekarrin/rosed"
)

// Severity classifies a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one finding surfaced over an interchange tree.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     interchange.Span
	Source   string
}

// DiagnosticsOptions configures thresholds; both default per spec.md §6.
type DiagnosticsOptions struct {
	Source              string
	CyclomaticThreshold int
	CognitiveThreshold  int
	WrapWidth           int
}

func (o DiagnosticsOptions) withDefaults() DiagnosticsOptions {
	if o.CyclomaticThreshold == 0 {
		o.CyclomaticThreshold = 10
	}
	if o.CognitiveThreshold == 0 {
		o.CognitiveThreshold = 15
	}
	if o.WrapWidth == 0 {
		o.WrapWidth = 80
	}
	return o
}

// Diagnostics walks every top-level node (and its descendants) and reports
// commands with no name, conditionals with no branches, and
// complexity-threshold violations, per spec.md §6/§7. It never throws: a malformed or unknown
// node shape is simply skipped rather than reported as an error about
// itself.
func Diagnostics(nodes []interchange.Node, opts DiagnosticsOptions) []Diagnostic {
	opts = opts.withDefaults()
	var out []Diagnostic
	for _, n := range nodes {
		out = append(out, diagnoseNode(n, opts)...)
	}
	return out
}

func diagnoseNode(n interchange.Node, opts DiagnosticsOptions) []Diagnostic {
	if n == nil {
		return nil
	}
	var out []Diagnostic

	switch t := n.(type) {
	case *interchange.Event:
		cyc := CalculateCyclomatic(t)
		if cyc > opts.CyclomaticThreshold {
			out = append(out, Diagnostic{
				Severity: SeverityWarning,
				Message:  wrapText(fmt.Sprintf("handler for %q has cyclomatic complexity %d, exceeding threshold %d", t.Event, cyc, opts.CyclomaticThreshold), opts.WrapWidth),
				Span:     t.NodeSpan,
				Source:   opts.Source,
			})
		}
		cog := CalculateCognitive(t)
		if cog > opts.CognitiveThreshold {
			out = append(out, Diagnostic{
				Severity: SeverityWarning,
				Message:  wrapText(fmt.Sprintf("handler for %q has cognitive complexity %d, exceeding threshold %d", t.Event, cog, opts.CognitiveThreshold), opts.WrapWidth),
				Span:     t.NodeSpan,
				Source:   opts.Source,
			})
		}
	case *interchange.Command:
		if t.Name == "" {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Message:  "command node has no name",
				Span:     t.NodeSpan,
				Source:   opts.Source,
			})
		}
	case *interchange.If:
		if len(t.ThenBranch) == 0 && len(t.ElseBranch) == 0 && len(t.ElseIfBranches) == 0 {
			out = append(out, Diagnostic{
				Severity: SeverityInfo,
				Message:  "conditional has no branches and is a no-op",
				Span:     t.NodeSpan,
				Source:   opts.Source,
			})
		}
	}

	for _, c := range n.Children() {
		out = append(out, diagnoseNode(c, opts)...)
	}
	return out
}

// wrapText reflows a diagnostic message to width, matching how the teacher
// wraps console output (engine.go's `rosed.Edit(...).Wrap(...)`).
func wrapText(msg string, width int) string {
	return rosed.Edit(msg).Wrap(width).String()
}
