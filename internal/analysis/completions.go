package analysis

import "github.com/codetalcott/hyperfixi/internal/interchange"

// CompletionKind classifies a Completion candidate.
type CompletionKind string

const (
	CompletionCommand  CompletionKind = "command"
	CompletionVariable CompletionKind = "variable"
	CompletionEvent    CompletionKind = "event"
)

// Completion is one candidate offered at a query position.
type Completion struct {
	Kind  CompletionKind
	Label string
}

// knownCommands is the static command vocabulary a completion provider
// offers regardless of tree contents, mirroring internal/codegen's
// registered command set (spec.md §4.8).
var knownCommands = []string{
	"toggle", "add", "remove", "set", "put", "show", "hide", "focus", "blur", "log", "wait",
	"fetch", "send", "increment", "decrement", "halt", "exit", "return",
	"scroll", "take", "throw", "default", "go", "append", "pick",
	"push-url", "replace-url", "get", "break", "continue", "beep", "js",
	"copy", "make", "swap", "morph", "transition", "measure", "settle",
	"tell", "async", "install", "render",
}

// Completions offers command-name completions plus every variable name and
// event name already in scope, per spec.md §6. Position determines which
// in-scope variables/events are visible: only those in nodes whose span
// precedes or overlaps pos are offered, matching a left-to-right scoping
// model; when no span information is available, every binding in nodes is
// offered.
func Completions(nodes []interchange.Node, pos Position) []Completion {
	out := make([]Completion, 0, len(knownCommands))
	for _, c := range knownCommands {
		out = append(out, Completion{Kind: CompletionCommand, Label: c})
	}

	seen := map[string]bool{}
	for _, n := range nodes {
		collectScopedCompletions(n, pos, seen, &out)
	}
	return out
}

func collectScopedCompletions(n interchange.Node, pos Position, seen map[string]bool, out *[]Completion) {
	if n == nil {
		return
	}
	if inScope(n.Span(), pos) {
		switch t := n.(type) {
		case *interchange.Variable:
			if !seen[t.Name] {
				seen[t.Name] = true
				*out = append(*out, Completion{Kind: CompletionVariable, Label: t.Name})
			}
		case *interchange.Event:
			if !seen["on:"+t.Event] {
				seen["on:"+t.Event] = true
				*out = append(*out, Completion{Kind: CompletionEvent, Label: t.Event})
			}
		}
	}
	for _, c := range n.Children() {
		collectScopedCompletions(c, pos, seen, out)
	}
}

func inScope(s interchange.Span, pos Position) bool {
	if !s.Present {
		return true
	}
	return s.Line < pos.Line || (s.Line == pos.Line && s.Column <= pos.Column)
}
