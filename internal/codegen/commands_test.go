package codegen

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_setLocalVariable(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{
		Name: "set",
		Args: []interchange.Node{&interchange.Variable{Name: "count", Scope: interchange.ScopeLocal}, &interchange.Literal{Value: float64(5)}},
	}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Equal(t, `_ctx.locals.set('count', 5)`, g.Code)
	assert.True(t, g.SideEffects)
	assert.False(t, g.Async)
}

func TestGenerate_setMissingInputsReturnsNil(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{Name: "set"}
	assert.Nil(t, r.Generate(ctx, cmd))
}

func TestGenerate_unknownCommandReturnsNil(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{Name: "frobnicate"}
	assert.Nil(t, r.Generate(ctx, cmd))
}

func TestGenerate_triggerAliasesSend(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{
		Name:   "trigger",
		Args:   []interchange.Node{&interchange.Literal{Value: "ready"}},
		Target: &interchange.Identifier{Name: "me"},
	}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Contains(t, g.Code, "_rt.send(")
}

func TestGenerate_waitNumeric(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{Name: "wait", Args: []interchange.Node{&interchange.Literal{Value: "200ms"}}}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Equal(t, "await _rt.wait(200)", g.Code)
	assert.True(t, g.Async)
}

func TestGenerate_waitSecondsSuffix(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{Name: "wait", Args: []interchange.Node{&interchange.Literal{Value: "2s"}}}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Equal(t, "await _rt.wait(2000)", g.Code)
}

func TestGenerate_fetchJSON(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{
		Name: "fetch",
		Args: []interchange.Node{&interchange.Literal{Value: "/api/widgets"}},
	}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Contains(t, g.Code, "_rt.fetchJSON(")
	assert.True(t, g.Async)
}

func TestGenerate_haltAndExit(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	assert.Equal(t, "throw _rt.HALT", r.Generate(ctx, &interchange.Command{Name: "halt"}).Code)
	assert.Equal(t, "throw _rt.EXIT", r.Generate(ctx, &interchange.Command{Name: "exit"}).Code)
}

func TestGenerate_incrementWithDefaultQuantity(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	cmd := &interchange.Command{Name: "increment", Args: []interchange.Node{&interchange.Variable{Name: "n", Scope: interchange.ScopeLocal}}}
	g := r.Generate(ctx, cmd)
	require.NotNil(t, g)
	assert.Contains(t, g.Code, "+ (1)")
}

func TestGenerate_throwDefaultMessage(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	g := r.Generate(ctx, &interchange.Command{Name: "throw"})
	require.NotNil(t, g)
	assert.Equal(t, "throw new Error('Error')", g.Code)
}

func TestGenerate_breakAndContinue(t *testing.T) {
	ctx := NewContext("h1")
	r := NewRegistry()
	assert.Equal(t, "break", r.Generate(ctx, &interchange.Command{Name: "break"}).Code)
	assert.Equal(t, "continue", r.Generate(ctx, &interchange.Command{Name: "continue"}).Code)
}
