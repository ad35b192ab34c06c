package codegen

import (
	"fmt"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/interchange"
)

// BodyEmitter lowers a statement list to code; supplied by the caller so
// control-flow codegen stays decoupled from however the enclosing
// statement-list emitter sequences async/sync bodies (spec.md §4.9: "caller-
// supplied body emitter").
type BodyEmitter func(ctx *Context, body []interchange.Node) string

// If lowers a conditional chain to
// `if (cond) { then… } else if (…) { … } else { … }`.
func If(ctx *Context, n *interchange.If, emit BodyEmitter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "if (%s) {\n%s\n}", Expr(ctx, n.Condition), emit(ctx, n.ThenBranch))
	for _, ei := range n.ElseIfBranches {
		fmt.Fprintf(&b, " else if (%s) {\n%s\n}", Expr(ctx, ei.Condition), emit(ctx, ei.Body))
	}
	if len(n.ElseBranch) > 0 {
		fmt.Fprintf(&b, " else {\n%s\n}", emit(ctx, n.ElseBranch))
	}
	return b.String()
}

// Repeat lowers a counted, conditional, or infinite loop, per spec.md
// §4.9's three Repeat variants, honoring ctx.MaxLoopIterations.
func Repeat(ctx *Context, n *interchange.Repeat, emit BodyEmitter) string {
	idx := ctx.FreshID("i")
	body := emit(ctx, n.Body)

	switch {
	case n.Count != nil:
		return fmt.Sprintf(
			"for (let %s = 0; %s < Math.min(%s, %d); %s++) {\n_ctx.locals.set('index', %s);\n%s\n}",
			idx, idx, Expr(ctx, n.Count), ctx.MaxLoopIterations, idx, idx, body,
		)
	case n.WhileCondition != nil:
		guard := ctx.FreshID("n")
		return fmt.Sprintf(
			"for (let %s = 0; (%s) && %s < %d; %s++) {\n%s\n}",
			guard, Expr(ctx, n.WhileCondition), guard, ctx.MaxLoopIterations, guard, body,
		)
	default:
		guard := ctx.FreshID("n")
		return fmt.Sprintf("for (let %s = 0; %s < %d; %s++) {\n%s\n}", guard, guard, ctx.MaxLoopIterations, guard, body)
	}
}

// ForEach materializes the collection into an array, then index-iterates,
// binding itemName and indexName (default "index") into locals.
func ForEach(ctx *Context, n *interchange.ForEach, emit BodyEmitter) string {
	collCode := Expr(ctx, n.Collection)
	idx := ctx.FreshID("i")
	arr := ctx.FreshID("arr")
	body := emit(ctx, n.Body)
	indexName := n.IndexNameOrDefault()

	return fmt.Sprintf(
		"{ const %s = Array.isArray(%s) ? %s : Array.from(%s);\n"+
			"for (let %s = 0; %s < Math.min(%s.length, %d); %s++) {\n"+
			"_ctx.locals.set(%s, %s[%s]);\n_ctx.locals.set(%s, %s);\n%s\n}\n}",
		arr, collCode, collCode, collCode,
		idx, idx, arr, ctx.MaxLoopIterations, idx,
		sQuote(n.ItemName), arr, idx, sQuote(indexName), idx, body,
	)
}

// While lowers a pretest loop, honoring the iteration cap the same way
// Repeat's while-condition variant does.
func While(ctx *Context, n *interchange.While, emit BodyEmitter) string {
	guard := ctx.FreshID("n")
	body := emit(ctx, n.Body)
	return fmt.Sprintf(
		"for (let %s = 0; (%s) && %s < %d; %s++) {\n%s\n}",
		guard, Expr(ctx, n.Condition), guard, ctx.MaxLoopIterations, guard, body,
	)
}
