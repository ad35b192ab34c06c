package codegen

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func TestExpr_literalEncoding(t *testing.T) {
	ctx := NewContext("h1")
	assert.Equal(t, `"hi"`, Expr(ctx, &interchange.Literal{Value: "hi"}))
	assert.Equal(t, "5", Expr(ctx, &interchange.Literal{Value: float64(5)}))
	assert.Equal(t, "true", Expr(ctx, &interchange.Literal{Value: true}))
	assert.Equal(t, "null", Expr(ctx, &interchange.Literal{Value: nil}))
}

func TestExpr_meItYou(t *testing.T) {
	ctx := NewContext("h1")
	assert.Equal(t, "_ctx.me", Expr(ctx, &interchange.Identifier{Name: "me"}))
	assert.Equal(t, "_ctx.it", Expr(ctx, &interchange.Identifier{Name: "it"}))
}

func TestExpr_identifierSanitized(t *testing.T) {
	ctx := NewContext("h1")
	assert.Equal(t, "foobar", Expr(ctx, &interchange.Identifier{Name: "foo-bar!"}))
}

func TestExpr_variableLocalAndGlobal(t *testing.T) {
	ctx := NewContext("h1")
	assert.Equal(t, `_ctx.locals.get('count')`, Expr(ctx, &interchange.Variable{Name: "count", Scope: interchange.ScopeLocal}))
	assert.Equal(t, `_rt.globals.get('count')`, Expr(ctx, &interchange.Variable{Name: "count", Scope: interchange.ScopeGlobal}))
	assert.Contains(t, ctx.RequiredHelpers(), "globals")
}

func TestExpr_possessiveStyleAttributePlain(t *testing.T) {
	ctx := NewContext("h1")
	obj := &interchange.Identifier{Name: "me"}
	assert.Equal(t, "_ctx.me.style.opacity", Expr(ctx, &interchange.Possessive{Object: obj, Property: "*opacity"}))
	assert.Equal(t, `_ctx.me.getAttribute('href')`, Expr(ctx, &interchange.Possessive{Object: obj, Property: "@href"}))
	assert.Equal(t, "_ctx.me.value", Expr(ctx, &interchange.Possessive{Object: obj, Property: "value"}))
}

func TestExpr_binaryOperatorTranslation(t *testing.T) {
	ctx := NewContext("h1")
	bin := &interchange.Binary{Operator: "is", Left: &interchange.Literal{Value: float64(1)}, Right: &interchange.Literal{Value: float64(1)}}
	assert.Equal(t, "(1 === 1)", Expr(ctx, bin))

	and := &interchange.Binary{Operator: "and", Left: &interchange.Literal{Value: true}, Right: &interchange.Literal{Value: false}}
	assert.Equal(t, "(true && false)", Expr(ctx, and))
}

func TestExpr_unaryNot(t *testing.T) {
	ctx := NewContext("h1")
	u := &interchange.Unary{Operator: "not", Operand: &interchange.Literal{Value: true}}
	assert.Equal(t, "(!true)", Expr(ctx, u))
}

func TestExpr_selectorClassAndID(t *testing.T) {
	ctx := NewContext("h1")
	ctx.CachePolicy = CacheNone
	assert.Equal(t, `document.getElementsByClassName('foo')`, Expr(ctx, &interchange.Selector{Value: ".foo"}))
	assert.Equal(t, `document.getElementById('bar')`, Expr(ctx, &interchange.Selector{Value: "#bar"}))
}

func TestExpr_positionalLowersToRuntimeCall(t *testing.T) {
	ctx := NewContext("h1")
	p := &interchange.Positional{Position: "first", Target: &interchange.Selector{Value: "li"}}
	ctx.CachePolicy = CacheNone
	code := Expr(ctx, p)
	assert.Contains(t, code, "_rt.positional(")
	assert.Contains(t, ctx.RequiredHelpers(), "positional")
}
