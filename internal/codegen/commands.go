package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/interchange"
)

// Generated is one command's emitted snippet plus the metadata the
// enclosing statement-list emitter needs: whether it introduces a
// suspension point, and whether it performs a side effect beyond producing
// a value (spec.md §4.8 point 3).
type Generated struct {
	Code        string
	Async       bool
	SideEffects bool
}

// Generator lowers one Command node to a Generated snippet, or returns nil
// when its mandatory inputs are missing (spec.md §4.8's "no-op" contract:
// generators never throw).
type Generator func(ctx *Context, cmd *interchange.Command) *Generated

// commandAliases maps an alternate command spelling to its canonical
// registered name, applied before registry lookup (spec.md §4.8:
// "alias tables map at registration time only").
var commandAliases = map[string]string{
	"trigger": "send",
}

// Registry is the command-name-to-generator dispatch table.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry builds the standard command registry with every contract
// from spec.md §4.8 wired in.
func NewRegistry() *Registry {
	r := &Registry{generators: map[string]Generator{}}
	r.register("toggle", genToggle)
	r.register("add", genAdd)
	r.register("remove", genRemove)
	r.register("set", genSet)
	r.register("put", genPut)
	r.register("show", genShowHide("show"))
	r.register("hide", genShowHide("hide"))
	r.register("focus", genElementMethod("focus"))
	r.register("blur", genElementMethod("blur"))
	r.register("log", genLog)
	r.register("wait", genWait)
	r.register("fetch", genFetch)
	r.register("send", genSend)
	r.register("increment", genIncDec(1))
	r.register("decrement", genIncDec(-1))
	r.register("halt", genSentinel("HALT"))
	r.register("exit", genSentinel("EXIT"))
	r.register("return", genReturn)
	r.register("scroll", genScroll)
	r.register("take", genTake)
	r.register("throw", genThrow)
	r.register("default", genDefault)
	r.register("go", genGo)
	r.register("append", genAppend)
	r.register("pick", genPick)
	r.register("push-url", genHistory("pushState"))
	r.register("replace-url", genHistory("replaceState"))
	r.register("get", genGet)
	r.register("break", genKeyword("break"))
	r.register("continue", genKeyword("continue"))
	r.register("beep", genBeep)
	r.register("js", genJS)
	r.register("copy", genCopy)
	r.register("make", genMake)
	r.register("swap", genSwap)
	r.register("morph", genMorph)
	r.register("transition", genTransition)
	r.register("measure", genMeasure)
	r.register("settle", genSettle)
	r.register("tell", genTell)
	r.register("async", genAsync)
	r.register("install", genInstall)
	r.register("render", genRender)
	return r
}

func (r *Registry) register(name string, g Generator) { r.generators[name] = g }

// Generate looks up and runs the generator for cmd.Name, resolving aliases
// first. Unknown commands yield nil (spec.md §4.8's registry-miss rule).
func (r *Registry) Generate(ctx *Context, cmd *interchange.Command) *Generated {
	name := cmd.Name
	if canonical, ok := commandAliases[name]; ok {
		name = canonical
	}
	gen, ok := r.generators[name]
	if !ok {
		return nil
	}
	return gen(ctx, cmd)
}

func role(cmd *interchange.Command, name string) interchange.Node {
	if v, ok := cmd.Role(name); ok {
		return v
	}
	return nil
}

func arg(cmd *interchange.Command, i int) interchange.Node {
	if i < len(cmd.Args) {
		return cmd.Args[i]
	}
	return nil
}

func mod(cmd *interchange.Command, name string) interchange.Node {
	if cmd.Modifiers == nil {
		return nil
	}
	return cmd.Modifiers[name]
}

func selectorText(n interchange.Node) (string, bool) {
	sel, ok := n.(*interchange.Selector)
	if !ok {
		return "", false
	}
	return sel.Value, true
}

func genToggle(ctx *Context, cmd *interchange.Command) *Generated {
	patient := role(cmd, interchange.RolePatient)
	if patient == nil {
		patient = arg(cmd, 0)
	}
	target := Expr(ctx, cmd.Target)
	if patient == nil {
		return nil
	}
	if sel, ok := selectorText(patient); ok {
		cls := strings.TrimPrefix(sel, ".")
		if strings.HasPrefix(sel, ".") {
			return &Generated{Code: fmt.Sprintf("%s.classList.toggle(%s)", target, sQuote(cls)), SideEffects: true}
		}
		if strings.HasPrefix(sel, "@") {
			ctx.RequireHelper("toggleAttr")
			return &Generated{Code: fmt.Sprintf("_rt.toggleAttr(%s, %s)", target, sQuote(strings.TrimPrefix(sel, "@"))), SideEffects: true}
		}
	}
	ctx.RequireHelper("toggle")
	return &Generated{Code: fmt.Sprintf("_rt.toggle(%s, %s)", target, Expr(ctx, patient)), SideEffects: true}
}

func genAdd(ctx *Context, cmd *interchange.Command) *Generated {
	patient := role(cmd, interchange.RolePatient)
	if patient == nil {
		patient = arg(cmd, 0)
	}
	if patient == nil {
		return nil
	}
	target := Expr(ctx, cmd.Target)
	if sel, ok := selectorText(patient); ok && strings.HasPrefix(sel, ".") {
		return &Generated{Code: fmt.Sprintf("%s.classList.add(%s)", target, sQuote(strings.TrimPrefix(sel, "."))), SideEffects: true}
	}
	return &Generated{Code: fmt.Sprintf("%s.appendChild(%s)", target, Expr(ctx, patient)), SideEffects: true}
}

func genRemove(ctx *Context, cmd *interchange.Command) *Generated {
	patient := role(cmd, interchange.RolePatient)
	if patient == nil {
		patient = arg(cmd, 0)
	}
	target := Expr(ctx, cmd.Target)
	if patient != nil {
		if sel, ok := selectorText(patient); ok && strings.HasPrefix(sel, ".") {
			return &Generated{Code: fmt.Sprintf("%s.classList.remove(%s)", target, sQuote(strings.TrimPrefix(sel, "."))), SideEffects: true}
		}
	}
	if target == "null" {
		return nil
	}
	return &Generated{Code: fmt.Sprintf("%s.remove()", target), SideEffects: true}
}

func genSet(ctx *Context, cmd *interchange.Command) *Generated {
	dest := role(cmd, interchange.RoleDestination)
	if dest == nil {
		dest = arg(cmd, 0)
	}
	val := role(cmd, interchange.RolePatient)
	if val == nil {
		val = arg(cmd, 1)
	}
	if dest == nil || val == nil {
		return nil
	}
	valCode := Expr(ctx, val)

	switch d := dest.(type) {
	case *interchange.Variable:
		if d.Scope == interchange.ScopeGlobal {
			ctx.RequireHelper("globals")
			return &Generated{Code: fmt.Sprintf("_rt.globals.set(%s, %s)", sQuote(d.Name), valCode), SideEffects: true}
		}
		return &Generated{Code: fmt.Sprintf("_ctx.locals.set(%s, %s)", sQuote(d.Name), valCode), SideEffects: true}
	case *interchange.Possessive:
		obj := Expr(ctx, d.Object)
		name := d.PropertyName()
		switch {
		case d.IsStyle():
			return &Generated{Code: fmt.Sprintf("%s.style.%s = %s", obj, sanitizeIdent(name), valCode), SideEffects: true}
		case d.IsAttribute():
			return &Generated{Code: fmt.Sprintf("%s.setAttribute(%s, %s)", obj, sQuote(name), valCode), SideEffects: true}
		default:
			return &Generated{Code: fmt.Sprintf("%s.%s = %s", obj, sanitizeIdent(name), valCode), SideEffects: true}
		}
	case *interchange.Member:
		return &Generated{Code: fmt.Sprintf("%s = %s", lowerMember(ctx, d), valCode), SideEffects: true}
	default:
		return &Generated{Code: fmt.Sprintf("%s = %s", Expr(ctx, dest), valCode), SideEffects: true}
	}
}

func genPut(ctx *Context, cmd *interchange.Command) *Generated {
	content := role(cmd, interchange.RolePatient)
	if content == nil {
		content = arg(cmd, 0)
	}
	if content == nil {
		return nil
	}
	dest := role(cmd, interchange.RoleDestination)
	if dest == nil {
		dest = cmd.Target
	}
	if dest == nil {
		return nil
	}
	destCode := Expr(ctx, dest)
	ctx.InvalidateSelectorCache()

	methodNode := role(cmd, interchange.RoleMethod)
	position := "into"
	if lit, ok := methodNode.(*interchange.Literal); ok {
		if s, ok := lit.Value.(string); ok {
			position = s
		}
	}

	contentCode := Expr(ctx, content)
	switch position {
	case "into":
		return &Generated{Code: fmt.Sprintf("%s.innerHTML = %s", destCode, contentCode), SideEffects: true}
	case "before", "after", "at start of", "at end of":
		adjacency := map[string]string{
			"before":      "beforebegin",
			"after":       "afterend",
			"at start of": "afterbegin",
			"at end of":   "beforeend",
		}[position]
		return &Generated{Code: fmt.Sprintf("%s.insertAdjacentHTML(%s, %s)", destCode, jsonString(adjacency), contentCode), SideEffects: true}
	default:
		return &Generated{Code: fmt.Sprintf("%s.innerHTML = %s", destCode, contentCode), SideEffects: true}
	}
}

func genShowHide(which string) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		target := Expr(ctx, cmd.Target)
		if target == "null" {
			return nil
		}
		if which == "show" {
			return &Generated{Code: fmt.Sprintf("%s.style.display = ''", target), SideEffects: true}
		}
		return &Generated{Code: fmt.Sprintf("%s.style.display = 'none'", target), SideEffects: true}
	}
}

func genElementMethod(method string) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		target := Expr(ctx, cmd.Target)
		if target == "null" {
			return nil
		}
		return &Generated{Code: fmt.Sprintf("%s.%s()", target, method), SideEffects: true}
	}
}

func genLog(ctx *Context, cmd *interchange.Command) *Generated {
	if len(cmd.Args) == 0 {
		return nil
	}
	parts := make([]string, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		parts = append(parts, Expr(ctx, a))
	}
	return &Generated{Code: fmt.Sprintf("console.log(%s)", strings.Join(parts, ", ")), SideEffects: true}
}

var durationRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(ms|s)?$`)

// durationMs parses a numeric literal, "Nms"/"Ns" string, or falls back to
// emitting the raw expression for runtime evaluation (spec.md §4.8's `wait`
// contract: "duration parser handles unit suffixes").
func durationMs(ctx *Context, n interchange.Node) string {
	if lit, ok := n.(*interchange.Literal); ok {
		switch v := lit.Value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64)
		case string:
			if m := durationRe.FindStringSubmatch(v); m != nil {
				n, _ := strconv.ParseFloat(m[1], 64)
				if m[2] == "s" {
					n *= 1000
				}
				return strconv.FormatFloat(n, 'g', -1, 64)
			}
		}
	}
	return Expr(ctx, n)
}

func genWait(ctx *Context, cmd *interchange.Command) *Generated {
	dur := role(cmd, interchange.RoleDuration)
	if dur == nil {
		dur = arg(cmd, 0)
	}
	if dur == nil {
		return nil
	}
	ctx.RequireHelper("wait")
	return &Generated{Code: fmt.Sprintf("await _rt.wait(%s)", durationMs(ctx, dur)), Async: true, SideEffects: true}
}

func genFetch(ctx *Context, cmd *interchange.Command) *Generated {
	src := role(cmd, interchange.RoleSource)
	if src == nil {
		src = arg(cmd, 0)
	}
	if src == nil {
		return nil
	}
	format := "json"
	if rt := role(cmd, interchange.RoleResponseType); rt != nil {
		if id, ok := rt.(*interchange.Identifier); ok {
			name := id.Name
			if name == "" {
				name = id.Value
			}
			format = name
		}
	}
	fn := map[string]string{"json": "fetchJSON", "html": "fetchHTML", "text": "fetchText"}[format]
	if fn == "" {
		fn = "fetchJSON"
	}
	ctx.RequireHelper(fn)
	return &Generated{Code: fmt.Sprintf("_ctx.it = await _rt.%s(%s)", fn, Expr(ctx, src)), Async: true, SideEffects: true}
}

func genSend(ctx *Context, cmd *interchange.Command) *Generated {
	patient := role(cmd, interchange.RolePatient)
	if patient == nil {
		patient = arg(cmd, 0)
	}
	if patient == nil {
		return nil
	}
	target := "_ctx.me"
	if cmd.Target != nil {
		target = Expr(ctx, cmd.Target)
	}
	detail := "undefined"
	if d := mod(cmd, "detail"); d != nil {
		detail = Expr(ctx, d)
	}
	nameCode := Expr(ctx, patient)
	ctx.RequireHelper("send")
	return &Generated{Code: fmt.Sprintf("_rt.send(%s, %s, %s)", target, nameCode, detail), SideEffects: true}
}

func genIncDec(sign int) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		dest := role(cmd, interchange.RoleDestination)
		if dest == nil {
			dest = arg(cmd, 0)
		}
		if dest == nil {
			return nil
		}
		qty := "1"
		if q := role(cmd, interchange.RoleQuantity); q != nil {
			qty = Expr(ctx, q)
		}
		delta := qty
		if sign < 0 {
			delta = fmt.Sprintf("-(%s)", qty)
		}

		if v, ok := dest.(*interchange.Variable); ok {
			getter := fmt.Sprintf("_ctx.locals.get(%s)", sQuote(v.Name))
			setter := "_ctx.locals.set"
			if v.Scope == interchange.ScopeGlobal {
				ctx.RequireHelper("globals")
				getter = fmt.Sprintf("_rt.globals.get(%s)", sQuote(v.Name))
				setter = "_rt.globals.set"
			}
			return &Generated{
				Code:        fmt.Sprintf("%s(%s, (parseFloat(%s) || 0) + (%s))", setter, sQuote(v.Name), getter, delta),
				SideEffects: true,
			}
		}
		target := Expr(ctx, dest)
		return &Generated{
			Code:        fmt.Sprintf("%s.textContent = (parseFloat(%s.textContent) || 0) + (%s)", target, target, delta),
			SideEffects: true,
		}
	}
}

func genSentinel(name string) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		return &Generated{Code: fmt.Sprintf("throw _rt.%s", name), SideEffects: true}
	}
}

func genReturn(ctx *Context, cmd *interchange.Command) *Generated {
	if v := arg(cmd, 0); v != nil {
		return &Generated{Code: fmt.Sprintf("return %s", Expr(ctx, v)), SideEffects: true}
	}
	return &Generated{Code: "return", SideEffects: true}
}

func genScroll(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	behavior := "auto"
	if mod(cmd, "smooth") != nil {
		behavior = "smooth"
	}
	return &Generated{Code: fmt.Sprintf("%s.scrollIntoView({behavior: %s})", target, jsonString(behavior)), SideEffects: true}
}

func genTake(ctx *Context, cmd *interchange.Command) *Generated {
	patient := arg(cmd, 0)
	if patient == nil {
		return nil
	}
	sel, ok := selectorText(patient)
	if !ok {
		return nil
	}
	cls := strings.TrimPrefix(sel, ".")
	target := Expr(ctx, cmd.Target)
	return &Generated{
		Code:        fmt.Sprintf("(document.querySelectorAll(%s).forEach(e => e.classList.remove(%s)), %s.classList.add(%s))", jsonString(sel), jsonString(cls), target, jsonString(cls)),
		SideEffects: true,
	}
}

func genThrow(ctx *Context, cmd *interchange.Command) *Generated {
	msg := "'Error'"
	if v := arg(cmd, 0); v != nil {
		msg = Expr(ctx, v)
	}
	return &Generated{Code: fmt.Sprintf("throw new Error(%s)", msg), SideEffects: true}
}

func genDefault(ctx *Context, cmd *interchange.Command) *Generated {
	dest := role(cmd, interchange.RoleDestination)
	if dest == nil {
		dest = arg(cmd, 0)
	}
	val := role(cmd, interchange.RolePatient)
	if val == nil {
		val = arg(cmd, 1)
	}
	if dest == nil || val == nil {
		return nil
	}
	v, ok := dest.(*interchange.Variable)
	if !ok {
		return nil
	}
	name := sQuote(v.Name)
	if v.Scope == interchange.ScopeGlobal {
		ctx.RequireHelper("globals")
		return &Generated{
			Code:        fmt.Sprintf("if (_rt.globals.get(%s) == null) _rt.globals.set(%s, %s)", name, name, Expr(ctx, val)),
			SideEffects: true,
		}
	}
	return &Generated{
		Code:        fmt.Sprintf("if (_ctx.locals.get(%s) == null) _ctx.locals.set(%s, %s)", name, name, Expr(ctx, val)),
		SideEffects: true,
	}
}

func genGo(ctx *Context, cmd *interchange.Command) *Generated {
	if mod(cmd, "back") != nil {
		return &Generated{Code: "history.back()", SideEffects: true}
	}
	if mod(cmd, "forward") != nil {
		return &Generated{Code: "history.forward()", SideEffects: true}
	}
	url := arg(cmd, 0)
	if url == nil {
		return nil
	}
	return &Generated{Code: fmt.Sprintf("location.assign(%s)", Expr(ctx, url)), SideEffects: true}
}

func genAppend(ctx *Context, cmd *interchange.Command) *Generated {
	content := role(cmd, interchange.RolePatient)
	if content == nil {
		content = arg(cmd, 0)
	}
	if content == nil {
		return nil
	}
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	return &Generated{Code: fmt.Sprintf("%s.insertAdjacentHTML('beforeend', %s)", target, Expr(ctx, content)), SideEffects: true}
}

func genPick(ctx *Context, cmd *interchange.Command) *Generated {
	coll := arg(cmd, 0)
	if coll == nil {
		return nil
	}
	collCode := Expr(ctx, coll)
	ctx.RequireHelper("arrayify")
	return &Generated{
		Code:        fmt.Sprintf("_ctx.it = (a => a[Math.floor(Math.random() * a.length)])(_rt.arrayify(%s))", collCode),
		SideEffects: true,
	}
}

func genHistory(method string) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		url := arg(cmd, 0)
		if url == nil {
			return nil
		}
		return &Generated{Code: fmt.Sprintf("history.%s(null, '', %s)", method, Expr(ctx, url)), SideEffects: true}
	}
}

func genGet(ctx *Context, cmd *interchange.Command) *Generated {
	v := arg(cmd, 0)
	if v == nil {
		return nil
	}
	code := Expr(ctx, v)
	return &Generated{Code: fmt.Sprintf("_ctx.it = _ctx.result = %s", code), SideEffects: true}
}

func genKeyword(kw string) Generator {
	return func(ctx *Context, cmd *interchange.Command) *Generated {
		return &Generated{Code: kw, SideEffects: true}
	}
}

func genBeep(ctx *Context, cmd *interchange.Command) *Generated {
	args := make([]string, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		args = append(args, Expr(ctx, a))
	}
	return &Generated{Code: fmt.Sprintf("console.log('%%c_', 'color: magenta', %s)", strings.Join(args, ", ")), SideEffects: true}
}

func genJS(ctx *Context, cmd *interchange.Command) *Generated {
	v := arg(cmd, 0)
	if v == nil {
		return nil
	}
	if lit, ok := v.(*interchange.Literal); ok {
		if code, ok := lit.Value.(string); ok {
			return &Generated{Code: fmt.Sprintf("((_ctx) => { %s })(_ctx)", code), SideEffects: true}
		}
	}
	return &Generated{Code: fmt.Sprintf("_ctx.result = %s", Expr(ctx, v)), SideEffects: true}
}

func genCopy(ctx *Context, cmd *interchange.Command) *Generated {
	v := arg(cmd, 0)
	if v == nil {
		return nil
	}
	return &Generated{Code: fmt.Sprintf("await navigator.clipboard.writeText(String(%s))", Expr(ctx, v)), Async: true, SideEffects: true}
}

func genMake(ctx *Context, cmd *interchange.Command) *Generated {
	v := arg(cmd, 0)
	if v == nil {
		return nil
	}
	var tag string
	if sel, ok := selectorText(v); ok {
		tag = sel
	} else if lit, ok := v.(*interchange.Literal); ok {
		if s, ok := lit.Value.(string); ok {
			tag = s
		}
	}
	if tag != "" {
		return &Generated{Code: fmt.Sprintf("_ctx.it = document.createElement(%s)", sQuote(tag)), SideEffects: true}
	}
	return &Generated{Code: fmt.Sprintf("_ctx.it = %s", Expr(ctx, v)), SideEffects: true}
}

var swapStrategies = map[string]bool{
	"innerHTML": true, "outerHTML": true, "beforeBegin": true,
	"afterBegin": true, "beforeEnd": true, "afterEnd": true,
	"delete": true, "morph": true,
}

func genSwap(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	strategy := "innerHTML"
	if s := mod(cmd, "strategy"); s != nil {
		if lit, ok := s.(*interchange.Literal); ok {
			if str, ok := lit.Value.(string); ok && swapStrategies[str] {
				strategy = str
			}
		}
	}
	content := arg(cmd, 0)
	contentCode := "''"
	if content != nil {
		contentCode = Expr(ctx, content)
	}
	ctx.InvalidateSelectorCache()
	switch strategy {
	case "delete":
		return &Generated{Code: fmt.Sprintf("%s.remove()", target), SideEffects: true}
	case "morph":
		ctx.RequireHelper("morph")
		return &Generated{Code: fmt.Sprintf("_rt.morph(%s, %s)", target, contentCode), SideEffects: true}
	case "outerHTML":
		return &Generated{Code: fmt.Sprintf("%s.outerHTML = %s", target, contentCode), SideEffects: true}
	case "beforeBegin", "afterBegin", "beforeEnd", "afterEnd":
		return &Generated{Code: fmt.Sprintf("%s.insertAdjacentHTML(%s, %s)", target, jsonString(strings.ToLower(strategy)), contentCode), SideEffects: true}
	default:
		return &Generated{Code: fmt.Sprintf("%s.innerHTML = %s", target, contentCode), SideEffects: true}
	}
}

func genMorph(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	content := arg(cmd, 0)
	if target == "null" || content == nil {
		return nil
	}
	ctx.RequireHelper("morph")
	ctx.InvalidateSelectorCache()
	return &Generated{Code: fmt.Sprintf("_rt.morph(%s, %s)", target, Expr(ctx, content)), SideEffects: true}
}

func genTransition(ctx *Context, cmd *interchange.Command) *Generated {
	prop := arg(cmd, 0)
	val := arg(cmd, 1)
	if prop == nil || val == nil {
		return nil
	}
	dur := "300"
	if d := mod(cmd, "over"); d != nil {
		dur = durationMs(ctx, d)
	}
	timing := jsonString("ease")
	if tm := mod(cmd, "with"); tm != nil {
		timing = Expr(ctx, tm)
	}
	target := Expr(ctx, cmd.Target)
	ctx.RequireHelper("transition")
	return &Generated{
		Code:        fmt.Sprintf("await _rt.transition(%s, %s, %s, %s, %s)", target, Expr(ctx, prop), Expr(ctx, val), dur, timing),
		Async:       true,
		SideEffects: true,
	}
}

func genMeasure(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	if p := arg(cmd, 0); p != nil {
		if lit, ok := p.(*interchange.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				return &Generated{Code: fmt.Sprintf("%s.getBoundingClientRect()[%s]", target, sQuote(s))}
			}
		}
	}
	ctx.RequireHelper("measure")
	return &Generated{Code: fmt.Sprintf("_rt.measure(%s)", target)}
}

func genSettle(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	timeout := "5000"
	if d := mod(cmd, "for"); d != nil {
		timeout = durationMs(ctx, d)
	}
	ctx.RequireHelper("settle")
	return &Generated{Code: fmt.Sprintf("await _rt.settle(%s, %s)", target, timeout), Async: true, SideEffects: true}
}

func genTell(ctx *Context, cmd *interchange.Command) *Generated {
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	return &Generated{Code: fmt.Sprintf("{ const __outerMe = _ctx.me, __outerYou = _ctx.you; _ctx.me = _ctx.you = %s;", target), SideEffects: false}
}

func genAsync(ctx *Context, cmd *interchange.Command) *Generated {
	return &Generated{Code: "(async () => {", SideEffects: false}
}

func genInstall(ctx *Context, cmd *interchange.Command) *Generated {
	name := arg(cmd, 0)
	if name == nil {
		return nil
	}
	target := "_ctx.me"
	if cmd.Target != nil {
		target = Expr(ctx, cmd.Target)
	}
	params := "undefined"
	if p := mod(cmd, "params"); p != nil {
		params = Expr(ctx, p)
	}
	ctx.RequireHelper("installBehavior")
	return &Generated{Code: fmt.Sprintf("_rt.installBehavior(%s, %s, %s)", target, Expr(ctx, name), params), SideEffects: true}
}

func genRender(ctx *Context, cmd *interchange.Command) *Generated {
	tmpl := arg(cmd, 0)
	if tmpl == nil {
		return nil
	}
	vars := "{}"
	if v := mod(cmd, "with"); v != nil {
		vars = Expr(ctx, v)
	}
	target := Expr(ctx, cmd.Target)
	if target == "null" {
		return nil
	}
	ctx.RequireHelper("render")
	return &Generated{Code: fmt.Sprintf("%s.innerHTML = _rt.render(%s, %s)", target, Expr(ctx, tmpl), vars), SideEffects: true}
}
