package interchange

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/hscript"
	"github.com/codetalcott/hyperfixi/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests spec.md §8's fromCore/toCore round-trip invariants: structure
// survives the trip even when source positions don't.

func TestRoundTrip_setCount(t *testing.T) {
	core := &hscript.Node{
		Kind:        hscript.KindCommand,
		CommandName: "set",
		Args:        []*hscript.Node{{Kind: hscript.KindIdentifier, Name: "count", Scope: "local"}},
		Modifiers: map[string]*hscript.Node{
			"to": {Kind: hscript.KindLiteral, Value: float64(5)},
		},
		Position: lex.Position{Line: 1, Column: 0, Offset: 0, Valid: true},
	}

	ic := FromCore(core)
	cmd, ok := ic.(*Command)
	require.True(t, ok)
	assert.Equal(t, "set", cmd.Name)
	patient, ok := cmd.Role(RolePatient)
	require.True(t, ok)
	lit, ok := patient.(*Literal)
	require.True(t, ok)
	assert.Equal(t, float64(5), lit.Value)

	back := ToCore(ic)
	assert.Equal(t, hscript.KindCommand, back.Kind)
	assert.Equal(t, "set", back.CommandName)
	require.Len(t, back.Args, 1)
	assert.Equal(t, "count", back.Args[0].Name)
}

func TestRoundTrip_possessiveStyle(t *testing.T) {
	core := &hscript.Node{
		Kind:         hscript.KindPossessiveExpression,
		Object:       &hscript.Node{Kind: hscript.KindIdentifier, Name: "me"},
		PropertyName: "*opacity",
	}
	ic := FromCore(core)
	poss, ok := ic.(*Possessive)
	require.True(t, ok)
	assert.True(t, poss.IsStyle())
	assert.Equal(t, "opacity", poss.PropertyName())

	back := ToCore(ic)
	assert.Equal(t, hscript.KindPossessiveExpression, back.Kind)
	assert.Equal(t, "*opacity", back.PropertyName)
}

func TestRoundTrip_waitDuration(t *testing.T) {
	core := &hscript.Node{
		Kind:        hscript.KindCommand,
		CommandName: "wait",
		Args:        []*hscript.Node{{Kind: hscript.KindLiteral, Value: float64(200)}},
	}
	ic := FromCore(core)
	cmd := ic.(*Command)
	dur, ok := cmd.Role(RoleDuration)
	require.True(t, ok)
	assert.Equal(t, float64(200), dur.(*Literal).Value)

	back := ToCore(ic)
	require.Len(t, back.Args, 1)
	assert.Equal(t, float64(200), back.Args[0].Value)
}

func TestRoundTrip_fetchAs(t *testing.T) {
	core := &hscript.Node{
		Kind:        hscript.KindCommand,
		CommandName: "fetch",
		Args:        []*hscript.Node{{Kind: hscript.KindLiteral, Value: "/api/widgets"}},
		Modifiers: map[string]*hscript.Node{
			"as": {Kind: hscript.KindLiteral, Value: "json"},
		},
	}
	ic := FromCore(core)
	cmd := ic.(*Command)
	rt, ok := cmd.Role(RoleResponseType)
	require.True(t, ok)
	assert.Equal(t, "json", rt.(*Identifier).Name)
}

func TestRoundTrip_forEach(t *testing.T) {
	core := &hscript.Node{
		Kind:        hscript.KindCommand,
		CommandName: "repeat",
		LoopVariant: "for",
		ItemName:    "item",
		IndexName:   "i",
		Collection:  &hscript.Node{Kind: hscript.KindIdentifier, Name: "items", Scope: "local"},
		ThenBranch: []*hscript.Node{
			{Kind: hscript.KindCommand, CommandName: "log", Args: []*hscript.Node{{Kind: hscript.KindIdentifier, Name: "item"}}},
		},
	}
	ic := FromCore(core)
	fe, ok := ic.(*ForEach)
	require.True(t, ok)
	assert.Equal(t, "item", fe.ItemName)
	assert.Equal(t, "i", fe.IndexNameOrDefault())

	back := ToCore(ic)
	assert.Equal(t, "repeat", back.CommandName)
	assert.Equal(t, "for", back.LoopVariant)
	assert.Equal(t, "item", back.ItemName)
	assert.Equal(t, "i", back.IndexName)
	require.Len(t, back.ThenBranch, 1)
}

func TestRoundTrip_whileLoop(t *testing.T) {
	core := &hscript.Node{
		Kind:           hscript.KindCommand,
		CommandName:    "repeat",
		LoopVariant:    "while",
		WhileCondition: &hscript.Node{Kind: hscript.KindIdentifier, Name: "running", Scope: "local"},
		ThenBranch:     []*hscript.Node{{Kind: hscript.KindCommand, CommandName: "halt"}},
	}
	ic := FromCore(core)
	w, ok := ic.(*While)
	require.True(t, ok)
	assert.NotNil(t, w.Condition)

	back := ToCore(ic)
	assert.Equal(t, "while", back.LoopVariant)
	assert.NotNil(t, back.WhileCondition)
}

func TestRoundTrip_ifElseIf(t *testing.T) {
	core := &hscript.Node{
		Kind:        hscript.KindCommand,
		CommandName: "if",
		Condition:   &hscript.Node{Kind: hscript.KindIdentifier, Name: "x", Scope: "local"},
		ThenBranch:  []*hscript.Node{{Kind: hscript.KindCommand, CommandName: "halt"}},
		ElseIfBranches: []hscript.ElseIf{
			{Condition: &hscript.Node{Kind: hscript.KindIdentifier, Name: "y", Scope: "local"}, Body: []*hscript.Node{{Kind: hscript.KindCommand, CommandName: "log"}}},
		},
		ElseBranch: []*hscript.Node{{Kind: hscript.KindCommand, CommandName: "beep"}},
	}
	ic := FromCore(core)
	ifNode, ok := ic.(*If)
	require.True(t, ok)
	require.Len(t, ifNode.ElseIfBranches, 1)
	require.Len(t, ifNode.ElseBranch, 1)

	back := ToCore(ic)
	assert.Equal(t, "if", back.CommandName)
	assert.True(t, back.IsBlocking)
	require.Len(t, back.ElseIfBranches, 1)
	require.Len(t, back.ElseBranch, 1)
}

func TestRoundTrip_unknownNodeBecomesLiteralOfItsValue(t *testing.T) {
	core := &hscript.Node{Kind: hscript.Kind("somethingNovel"), Value: "kept"}
	ic := FromCore(core)
	lit, ok := ic.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "kept", lit.Value)
}

func TestRoundTrip_nilIsNullLiteral(t *testing.T) {
	ic := FromCore(nil)
	lit, ok := ic.(*Literal)
	require.True(t, ok)
	assert.Nil(t, lit.Value)

	back := ToCore(nil)
	assert.Equal(t, hscript.KindLiteral, back.Kind)
	assert.Nil(t, back.Value)
}

func TestRoundTrip_syntheticPositionWhenAbsent(t *testing.T) {
	ic := &Literal{Value: "x"}
	back := ToCore(ic)
	assert.False(t, back.Position.Valid)
	assert.Equal(t, 1, back.Position.Line)
	assert.Equal(t, 0, back.Position.Column)
}

func TestRoundTrip_positionPreservedWhenPresent(t *testing.T) {
	ic := &Literal{Value: "x", NodeSpan: Span{Line: 3, Column: 7, Start: 40, Present: true}}
	back := ToCore(ic)
	assert.True(t, back.Position.Valid)
	assert.Equal(t, 3, back.Position.Line)
	assert.Equal(t, 7, back.Position.Column)
}
