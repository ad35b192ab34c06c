package interchange

import (
	"github.com/codetalcott/hyperfixi/internal/hscript"
	"github.com/codetalcott/hyperfixi/internal/lex"
)

// ToCore is the inverse of FromCore: it lowers an interchange node back to
// the verbose core AST shape, for feeding a legacy runtime that only
// understands front-end A's vocabulary. Positions are preserved when
// present on the interchange node; absent positions are stamped with the
// synthetic (0, 0, 1, 0) coordinate per spec.md §4.6, since downstream
// execution depends only on tree structure, not source spans.
func ToCore(n Node) *hscript.Node {
	if n == nil {
		return &hscript.Node{Kind: hscript.KindLiteral, Value: nil, Position: lex.Synthetic()}
	}

	switch t := n.(type) {
	case *Literal:
		return &hscript.Node{Kind: hscript.KindLiteral, Value: t.Value, Position: corePosition(t.NodeSpan)}
	case *Identifier:
		name := t.Name
		if name == "" {
			name = t.Value
		}
		return &hscript.Node{Kind: hscript.KindIdentifier, Name: name, Position: corePosition(t.NodeSpan)}
	case *Selector:
		return &hscript.Node{Kind: hscript.KindSelector, Selector: t.Value, Position: corePosition(t.NodeSpan)}
	case *Variable:
		// variable lowers to identifier, retaining scope, per spec.md §4.6.
		return &hscript.Node{Kind: hscript.KindIdentifier, Name: t.Name, Scope: t.Scope.String(), Position: corePosition(t.NodeSpan)}
	case *Binary:
		return &hscript.Node{
			Kind: hscript.KindBinaryExpression, Operator: t.Operator,
			Left: ToCore(t.Left), Right: ToCore(t.Right), Position: corePosition(t.NodeSpan),
		}
	case *Unary:
		return &hscript.Node{
			Kind: hscript.KindUnaryExpression, Operator: t.Operator,
			Operand: ToCore(t.Operand), Argument: ToCore(t.Operand), Position: corePosition(t.NodeSpan),
		}
	case *Member:
		return &hscript.Node{
			Kind: hscript.KindMemberExpression, Object: ToCore(t.Object), Property: ToCore(t.Property),
			Computed: t.Computed, Position: corePosition(t.NodeSpan),
		}
	case *Possessive:
		// possessive always lowers to possessiveExpression, with a string
		// property wrapped as an identifier node, per spec.md §4.6.
		return &hscript.Node{
			Kind: hscript.KindPossessiveExpression, Object: ToCore(t.Object),
			Property:     &hscript.Node{Kind: hscript.KindIdentifier, Name: t.Property},
			PropertyName: t.Property,
			Position:     corePosition(t.NodeSpan),
		}
	case *Call:
		args := make([]*hscript.Node, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, ToCore(a))
		}
		return &hscript.Node{
			Kind: hscript.KindCallExpression, Callee: ToCore(t.Callee), Args: args, Arguments: args,
			Position: corePosition(t.NodeSpan),
		}
	case *Positional:
		// positional becomes a callExpression whose callee is an identifier
		// named after the position (first/last/next/...), per spec.md §4.6.
		callee := &hscript.Node{Kind: hscript.KindIdentifier, Name: t.Position}
		var args []*hscript.Node
		if t.Target != nil {
			args = append(args, ToCore(t.Target))
		}
		return &hscript.Node{
			Kind: hscript.KindCallExpression, Callee: callee, Args: args, Arguments: args,
			Position: corePosition(t.NodeSpan),
		}
	case *Event:
		return toCoreEvent(t)
	case *Command:
		return toCoreCommand(t)
	case *If:
		return toCoreIf(t)
	case *Repeat:
		return toCoreRepeat(t)
	case *ForEach:
		return toCoreForEach(t)
	case *While:
		return toCoreWhile(t)
	default:
		return &hscript.Node{Kind: hscript.KindLiteral, Value: nil, Position: lex.Synthetic()}
	}
}

// corePosition preserves the interchange span when present, else stamps the
// synthetic (0, 0, 1, 0) coordinate per spec.md §4.6.
func corePosition(s Span) lex.Position {
	if !s.Present {
		return lex.Synthetic()
	}
	return lex.Position{Line: s.Line, Column: s.Column, Offset: s.Start, Valid: true}
}

func toCoreBody(nodes []Node) []*hscript.Node {
	out := make([]*hscript.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ToCore(n))
	}
	return out
}

func toCoreEvent(t *Event) *hscript.Node {
	n := &hscript.Node{
		Kind:      hscript.KindEventHandler,
		EventName: t.Event,
		Commands:  toCoreBody(t.Body),
		Position:  corePosition(t.NodeSpan),
		ModifierFlags: map[string]bool{
			"once":    t.Modifiers.Once,
			"prevent": t.Modifiers.Prevent,
			"stop":    t.Modifiers.Stop,
			"capture": t.Modifiers.Capture,
			"passive": t.Modifiers.Passive,
		},
		ModifierInts: map[string]int{},
	}
	if t.Modifiers.HasDebounce {
		n.ModifierInts["debounce"] = t.Modifiers.Debounce
	}
	if t.Modifiers.HasThrottle {
		n.ModifierInts["throttle"] = t.Modifiers.Throttle
	}
	if t.Target != nil {
		n.From = ToCore(t.Target)
	} else if t.Modifiers.HasFrom {
		n.From = &hscript.Node{Kind: hscript.KindSelector, Selector: t.Modifiers.From}
	}
	return n
}

// toCoreCommand lowers a generic Command back to the core "command" shape.
// Roles are not re-emitted as modifiers: Args/Modifiers/Target already carry
// everything roles were derived from, so round-tripping through Roles would
// duplicate information rather than recover it (see spec.md §4.5: roles are
// a read-only view).
func toCoreCommand(t *Command) *hscript.Node {
	args := make([]*hscript.Node, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, ToCore(a))
	}
	mods := make(map[string]*hscript.Node, len(t.Modifiers))
	for k, v := range t.Modifiers {
		mods[k] = ToCore(v)
	}
	n := &hscript.Node{
		Kind: hscript.KindCommand, CommandName: t.Name, Args: args,
		Position: corePosition(t.NodeSpan),
	}
	if len(mods) > 0 {
		n.Modifiers = mods
	}
	if t.Target != nil {
		n.Target = ToCore(t.Target)
	}
	return n
}

// toCoreIf lowers an If to `command 'if'` with condition, thenBranch, an
// optional elseBranch, isBlocking: true, and empty args, per spec.md §4.6.
func toCoreIf(t *If) *hscript.Node {
	n := &hscript.Node{
		Kind: hscript.KindCommand, CommandName: "if", IsBlocking: true,
		Condition:  ToCore(t.Condition),
		ThenBranch: toCoreBody(t.ThenBranch),
		Position:   corePosition(t.NodeSpan),
	}
	for _, ei := range t.ElseIfBranches {
		n.ElseIfBranches = append(n.ElseIfBranches, hscript.ElseIf{
			Condition: ToCore(ei.Condition), Body: toCoreBody(ei.Body),
		})
	}
	if len(t.ElseBranch) > 0 {
		n.ElseBranch = toCoreBody(t.ElseBranch)
	}
	return n
}

func toCoreRepeat(t *Repeat) *hscript.Node {
	n := &hscript.Node{
		Kind: hscript.KindCommand, CommandName: "repeat", IsBlocking: true,
		LoopVariant: "times",
		ThenBranch:  toCoreBody(t.Body),
		Position:    corePosition(t.NodeSpan),
	}
	if t.Count != nil {
		n.Count = ToCore(t.Count)
	}
	if t.WhileCondition != nil {
		n.LoopVariant = "while"
		n.WhileCondition = ToCore(t.WhileCondition)
	}
	return n
}

func toCoreForEach(t *ForEach) *hscript.Node {
	n := &hscript.Node{
		Kind: hscript.KindCommand, CommandName: "repeat", IsBlocking: true,
		LoopVariant: "for",
		ItemName:    t.ItemName,
		ThenBranch:  toCoreBody(t.Body),
		Position:    corePosition(t.NodeSpan),
	}
	if t.HasIndexName {
		n.IndexName = t.IndexName
	}
	if t.Collection != nil {
		n.Collection = ToCore(t.Collection)
	}
	return n
}

func toCoreWhile(t *While) *hscript.Node {
	return &hscript.Node{
		Kind: hscript.KindCommand, CommandName: "repeat", IsBlocking: true,
		LoopVariant:    "while",
		WhileCondition: ToCore(t.Condition),
		ThenBranch:     toCoreBody(t.Body),
		Position:       corePosition(t.NodeSpan),
	}
}
