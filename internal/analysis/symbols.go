package analysis

import "github.com/codetalcott/hyperfixi/internal/interchange"

// SymbolKind classifies a Symbol.
type SymbolKind string

const (
	SymbolHandler  SymbolKind = "handler"
	SymbolVariable SymbolKind = "variable"
	SymbolCommand  SymbolKind = "command"
)

// Symbol is one named, locatable thing in a tree: an event handler, a
// variable reference, or a command invocation.
type Symbol struct {
	Kind SymbolKind
	Name string
	Span interchange.Span
}

// Symbols collects every handler, variable, and command across nodes, in
// encounter order. Pure: does not mutate nodes or deduplicate by identity
// beyond what the tree itself expresses.
func Symbols(nodes []interchange.Node) []Symbol {
	var out []Symbol
	for _, n := range nodes {
		out = append(out, symbolsOf(n)...)
	}
	return out
}

func symbolsOf(n interchange.Node) []Symbol {
	if n == nil {
		return nil
	}
	var out []Symbol
	switch t := n.(type) {
	case *interchange.Event:
		out = append(out, Symbol{Kind: SymbolHandler, Name: t.Event, Span: t.NodeSpan})
	case *interchange.Variable:
		out = append(out, Symbol{Kind: SymbolVariable, Name: t.Name, Span: t.NodeSpan})
	case *interchange.Command:
		out = append(out, Symbol{Kind: SymbolCommand, Name: t.Name, Span: t.NodeSpan})
	}
	for _, c := range n.Children() {
		out = append(out, symbolsOf(c)...)
	}
	return out
}
