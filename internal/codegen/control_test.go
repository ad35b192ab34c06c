package codegen

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func flatEmit(ctx *Context, body []interchange.Node) string {
	out := ""
	for _, n := range body {
		cmd, ok := n.(*interchange.Command)
		if !ok {
			continue
		}
		g := NewRegistry().Generate(ctx, cmd)
		if g != nil {
			out += g.Code + ";\n"
		}
	}
	return out
}

func TestIf_basicChain(t *testing.T) {
	ctx := NewContext("h1")
	n := &interchange.If{
		Condition:  &interchange.Literal{Value: true},
		ThenBranch: []interchange.Node{&interchange.Command{Name: "halt"}},
		ElseIfBranches: []interchange.ElseIfBranch{
			{Condition: &interchange.Literal{Value: false}, Body: []interchange.Node{&interchange.Command{Name: "exit"}}},
		},
		ElseBranch: []interchange.Node{&interchange.Command{Name: "break"}},
	}
	code := If(ctx, n, flatEmit)
	assert.Contains(t, code, "if (true)")
	assert.Contains(t, code, "else if (false)")
	assert.Contains(t, code, "else {")
}

func TestRepeat_countedHonorsCap(t *testing.T) {
	ctx := NewContext("h1")
	ctx.MaxLoopIterations = 50
	n := &interchange.Repeat{Count: &interchange.Literal{Value: float64(3)}, Body: nil}
	code := Repeat(ctx, n, flatEmit)
	assert.Contains(t, code, "Math.min(3, 50)")
	assert.Contains(t, code, "_ctx.locals.set('index',")
}

func TestRepeat_forever(t *testing.T) {
	ctx := NewContext("h1")
	n := &interchange.Repeat{}
	code := Repeat(ctx, n, flatEmit)
	assert.Contains(t, code, "for (let")
}

func TestForEach_bindsItemAndIndex(t *testing.T) {
	ctx := NewContext("h1")
	n := &interchange.ForEach{ItemName: "item", Collection: &interchange.Variable{Name: "items", Scope: interchange.ScopeLocal}}
	code := ForEach(ctx, n, flatEmit)
	assert.Contains(t, code, `'item'`)
	assert.Contains(t, code, `'index'`)
	assert.Contains(t, code, "Array.isArray(")
}

func TestWhile_honorsCap(t *testing.T) {
	ctx := NewContext("h1")
	ctx.MaxLoopIterations = 10
	n := &interchange.While{Condition: &interchange.Literal{Value: true}}
	code := While(ctx, n, flatEmit)
	assert.Contains(t, code, "< 10")
}
