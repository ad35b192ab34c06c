package interchange

import "github.com/codetalcott/hyperfixi/internal/hscript"

// FromCore converts a core AST node produced by front-end A (or any other
// producer of the same shape) into the canonical interchange vocabulary.
// It is total: nil, or a node of unrecognized Kind, becomes a literal node
// wrapping its Value (nil if that's absent too) — per spec.md §4.4, this
// converter never fails.
func FromCore(n *hscript.Node) Node {
	if n == nil {
		return &Literal{Value: nil}
	}

	switch n.Kind {
	case hscript.KindLiteral:
		return &Literal{Value: n.Value, NodeSpan: spanOf(n)}
	case hscript.KindIdentifier:
		return &Identifier{Value: n.Name, Name: n.Name, NodeSpan: spanOf(n)}
	case hscript.KindSelector:
		return &Selector{Value: n.Selector, NodeSpan: spanOf(n)}
	case hscript.KindVariable:
		return &Variable{Name: n.Name, Scope: scopeOf(n.Scope), NodeSpan: spanOf(n)}
	case hscript.KindBinaryExpression:
		return &Binary{Operator: n.Operator, Left: FromCore(n.Left), Right: FromCore(n.Right), NodeSpan: spanOf(n)}
	case hscript.KindUnaryExpression:
		return &Unary{Operator: n.Operator, Operand: FromCore(n.UnaryOperand()), NodeSpan: spanOf(n)}
	case hscript.KindPossessiveExpression, hscript.KindPropertyAccess:
		obj := n.Object
		var objNode Node
		if obj == nil {
			objNode = &Identifier{Value: "me", Name: "me"}
		} else {
			objNode = FromCore(obj)
		}
		prop := n.PropertyName
		if n.Property != nil {
			prop = propertyText(n.Property)
		}
		return &Possessive{Object: objNode, Property: prop, NodeSpan: spanOf(n)}
	case hscript.KindMemberExpression:
		var objNode Node
		if n.Object == nil {
			objNode = &Identifier{Value: "me", Name: "me"}
		} else {
			objNode = FromCore(n.Object)
		}
		var propNode Node
		if n.Property != nil {
			propNode = FromCore(n.Property)
		}
		return &Member{Object: objNode, Property: propNode, Computed: n.Computed, NodeSpan: spanOf(n)}
	case hscript.KindCallExpression:
		var callee Node
		if n.CalleeName != "" {
			callee = &Identifier{Value: n.CalleeName, Name: n.CalleeName}
		} else {
			callee = FromCore(n.Callee)
		}
		args := make([]Node, 0, len(n.CallArgs()))
		for _, a := range n.CallArgs() {
			args = append(args, FromCore(a))
		}
		return &Call{Callee: callee, Args: args, NodeSpan: spanOf(n)}
	case hscript.KindPositional:
		var target Node
		if n.Target != nil {
			target = FromCore(n.Target)
		}
		return &Positional{Position: n.Name, Target: target, NodeSpan: spanOf(n)}
	case hscript.KindEventHandler:
		return fromCoreEvent(n)
	case hscript.KindCommand:
		return fromCoreCommand(n)
	case hscript.KindCommandSequence, hscript.KindBlock:
		return fromCoreSequence(n)
	default:
		return &Literal{Value: n.Value}
	}
}

func spanOf(n *hscript.Node) Span {
	if !n.Position.Valid {
		return Span{}
	}
	return Span{Line: n.Position.Line, Column: n.Position.Column, Start: n.Position.Offset, Present: true}
}

func scopeOf(s string) VarScope {
	switch s {
	case "global":
		return ScopeGlobal
	case "element":
		return ScopeElement
	default:
		return ScopeLocal
	}
}

// propertyText reads a property node's Name or Value, per spec.md §4.4's
// "if property is a node, read its name or value" rule.
func propertyText(n *hscript.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if s, ok := n.Value.(string); ok {
		return s
	}
	return ""
}

func fromCoreEvent(n *hscript.Node) Node {
	body := make([]Node, 0, len(n.Commands))
	for _, c := range n.Commands {
		body = append(body, FromCore(c))
	}

	mods := Modifiers{
		Once:    n.ModifierFlags["once"],
		Prevent: n.ModifierFlags["prevent"],
		Stop:    n.ModifierFlags["stop"],
		Capture: n.ModifierFlags["capture"],
		Passive: n.ModifierFlags["passive"],
	}
	if v, ok := n.ModifierInts["debounce"]; ok {
		mods.HasDebounce, mods.Debounce = true, v
	}
	if v, ok := n.ModifierInts["throttle"]; ok {
		mods.HasThrottle, mods.Throttle = true, v
	}

	var target Node
	// "from" wins over a bare "selector" field when both are present.
	if n.From != nil {
		target = FromCore(n.From)
		if sel, ok := target.(*Selector); ok {
			mods.HasFrom, mods.From = true, sel.Value
		}
	} else if n.Selector != "" {
		mods.HasFrom, mods.From = true, n.Selector
	}

	return &Event{Event: n.EventName, Modifiers: mods, Body: body, Target: target, NodeSpan: spanOf(n)}
}

func fromCoreSequence(n *hscript.Node) Node {
	children := n.Children
	if len(children) == 1 {
		return FromCore(children[0])
	}
	// A standalone multi-statement sequence is wrapped in a synthetic
	// click handler so it is representable by the same node vocabulary,
	// per spec.md §4.4.
	body := make([]Node, 0, len(children))
	for _, c := range children {
		body = append(body, FromCore(c))
	}
	return &Event{Event: "click", Body: body, NodeSpan: spanOf(n)}
}

func fromCoreCommand(n *hscript.Node) Node {
	switch n.CommandName {
	case "if", "unless":
		cond := FromCore(n.Condition)
		thenBody := fromCoreBody(n.ThenBranch)
		elseBody := fromCoreBody(n.ElseBranch)
		var elifs []ElseIfBranch
		for _, ei := range n.ElseIfBranches {
			elifs = append(elifs, ElseIfBranch{Condition: FromCore(ei.Condition), Body: fromCoreBody(ei.Body)})
		}
		return &If{Condition: cond, ThenBranch: thenBody, ElseIfBranches: elifs, ElseBranch: elseBody, NodeSpan: spanOf(n)}
	case "repeat":
		body := fromCoreBody(n.ThenBranch)
		switch n.LoopVariant {
		case "times":
			var count Node
			if n.Count != nil {
				count = FromCore(n.Count)
			}
			return &Repeat{Body: body, Count: count, NodeSpan: spanOf(n)}
		case "for":
			var coll Node
			if n.Collection != nil {
				coll = FromCore(n.Collection)
			}
			return &ForEach{
				ItemName: n.ItemName, IndexName: n.IndexName, HasIndexName: n.IndexName != "",
				Collection: coll, Body: body, NodeSpan: spanOf(n),
			}
		case "while":
			var cond Node
			if n.WhileCondition != nil {
				cond = FromCore(n.WhileCondition)
			}
			return &While{Condition: cond, Body: body, NodeSpan: spanOf(n)}
		default:
			return &Repeat{Body: body, NodeSpan: spanOf(n)}
		}
	default:
		return fromCoreGenericCommand(n)
	}
}

func fromCoreBody(nodes []*hscript.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, c := range nodes {
		out = append(out, FromCore(c))
	}
	return out
}

func fromCoreGenericCommand(n *hscript.Node) Node {
	args := make([]Node, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, FromCore(a))
	}
	mods := map[string]Node{}
	for k, v := range n.Modifiers {
		mods[k] = FromCore(v)
	}
	var target Node
	if n.Target != nil {
		target = FromCore(n.Target)
	}

	cmd := &Command{Name: n.CommandName, Args: args, Target: target, NodeSpan: spanOf(n)}
	if len(mods) > 0 {
		cmd.Modifiers = mods
	}

	if roles := InferRoles(cmd); len(roles) > 0 {
		cmd.Roles = roles
	}
	return cmd
}
