package codegen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/interchange"
)

var identSanitizer = regexp.MustCompile(`[^A-Za-z0-9_$]`)
var selectorSanitizer = regexp.MustCompile(`[^A-Za-z0-9_\-#.\[\]="]`)

var binaryOpJS = map[string]string{
	"and":      "&&",
	"or":       "||",
	"is":       "===",
	"is not":   "!==",
	"==":       "===",
	"!=":       "!==",
	"contains": ".includes",
	"includes": ".includes",
	"has":      ".includes",
}

var unaryOpJS = map[string]string{
	"not": "!",
	"-":   "-",
	"+":   "+",
}

// Expr lowers one interchange expression node to a target-language
// expression string, per spec.md §4.7.
func Expr(ctx *Context, n interchange.Node) string {
	if n == nil {
		return "null"
	}

	switch t := n.(type) {
	case *interchange.Literal:
		return encodeLiteral(t.Value)
	case *interchange.Identifier:
		name := t.Name
		if name == "" {
			name = t.Value
		}
		switch name {
		case "me", "it", "you":
			return "_ctx." + name
		default:
			return sanitizeIdent(name)
		}
	case *interchange.Variable:
		if t.Scope == interchange.ScopeGlobal {
			ctx.RequireHelper("globals")
			return fmt.Sprintf("_rt.globals.get(%s)", sQuote(t.Name))
		}
		return fmt.Sprintf("_ctx.locals.get(%s)", sQuote(t.Name))
	case *interchange.Selector:
		return lowerSelector(ctx, t.Value)
	case *interchange.Possessive:
		return lowerPossessive(ctx, t)
	case *interchange.Member:
		return lowerMember(ctx, t)
	case *interchange.Binary:
		return lowerBinary(ctx, t)
	case *interchange.Unary:
		return lowerUnary(ctx, t)
	case *interchange.Call:
		return lowerCall(ctx, t)
	case *interchange.Positional:
		return lowerPositional(ctx, t)
	default:
		return "null"
	}
}

func encodeLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return jsonString(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "null"
		}
		return string(b)
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

var singleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// sQuote encodes an internal name (variable name, selector/class/attribute
// name, helper position tag) as a single-quoted JS string literal, matching
// the runtime-call convention used throughout the emitted bundle; contrast
// with jsonString/encodeLiteral, which double-quote actual literal values.
func sQuote(s string) string {
	return "'" + singleQuoteEscaper.Replace(s) + "'"
}

func sanitizeIdent(name string) string {
	return identSanitizer.ReplaceAllString(name, "")
}

// lowerSelector chooses between a cached querySelector, a class/id
// shortcut, and a plain querySelector(All) per spec.md §4.7.
func lowerSelector(ctx *Context, sel string) string {
	scrubbed := selectorSanitizer.ReplaceAllString(sel, "")

	if v, ok := ctx.CachedSelector(scrubbed); ok {
		return v
	}

	var expr string
	switch {
	case strings.HasPrefix(scrubbed, "."):
		expr = fmt.Sprintf("document.getElementsByClassName(%s)", sQuote(scrubbed[1:]))
	case strings.HasPrefix(scrubbed, "#"):
		expr = fmt.Sprintf("document.getElementById(%s)", sQuote(scrubbed[1:]))
	default:
		expr = fmt.Sprintf("document.querySelectorAll(%s)", sQuote(scrubbed))
	}

	if ctx.CachePolicy == CacheWhenSafe {
		v := ctx.FreshID("sel")
		ctx.CacheSelector(scrubbed, v)
		return fmt.Sprintf("(%s = %s ?? %s)", v, v, expr)
	}
	return expr
}

// lowerPossessive handles the three possessive forms: style (*), attribute
// (@), and plain dotted field access.
func lowerPossessive(ctx *Context, p *interchange.Possessive) string {
	obj := Expr(ctx, p.Object)
	name := p.PropertyName()
	switch {
	case p.IsStyle():
		return fmt.Sprintf("%s.style.%s", obj, sanitizeIdent(name))
	case p.IsAttribute():
		return fmt.Sprintf("%s.getAttribute(%s)", obj, sQuote(name))
	default:
		return fmt.Sprintf("%s.%s", obj, sanitizeIdent(name))
	}
}

func lowerMember(ctx *Context, m *interchange.Member) string {
	obj := Expr(ctx, m.Object)
	if m.Computed {
		return fmt.Sprintf("%s[%s]", obj, Expr(ctx, m.Property))
	}
	if name, ok := m.PropertyName(); ok {
		return fmt.Sprintf("%s.%s", obj, sanitizeIdent(name))
	}
	return fmt.Sprintf("%s[%s]", obj, Expr(ctx, m.Property))
}

func lowerBinary(ctx *Context, b *interchange.Binary) string {
	op := strings.ToLower(b.Operator)
	left := Expr(ctx, b.Left)
	right := Expr(ctx, b.Right)
	if jsOp, ok := binaryOpJS[op]; ok {
		if strings.HasPrefix(jsOp, ".") {
			return fmt.Sprintf("%s%s(%s)", left, jsOp, right)
		}
		return fmt.Sprintf("(%s %s %s)", left, jsOp, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, b.Operator, right)
}

func lowerUnary(ctx *Context, u *interchange.Unary) string {
	op := strings.ToLower(u.Operator)
	operand := Expr(ctx, u.Operand)
	if jsOp, ok := unaryOpJS[op]; ok {
		return fmt.Sprintf("(%s%s)", jsOp, operand)
	}
	return fmt.Sprintf("(%s%s)", u.Operator, operand)
}

func lowerCall(ctx *Context, c *interchange.Call) string {
	callee := Expr(ctx, c.Callee)
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, Expr(ctx, a))
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

// lowerPositional lowers "first/last/next/previous/closest/parent/random"
// references to a runtime call accepting the position tag and an optional
// target expression, per spec.md §4.7.
func lowerPositional(ctx *Context, p *interchange.Positional) string {
	ctx.RequireHelper("positional")
	target := "null"
	if p.Target != nil {
		target = Expr(ctx, p.Target)
	}
	return fmt.Sprintf("_rt.positional(%s, %s)", sQuote(p.Position), target)
}
