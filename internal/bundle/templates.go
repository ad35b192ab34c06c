package bundle

// These template strings are the emitted bundle's literal runtime source.
// They are intentionally minimal skeletons (not full reimplementations of
// the emitted-code contract in spec.md §6) — the assembler's job is
// selecting and wiring pieces together, not authoring a full runtime from
// scratch.

const liteParserTemplate = `
// lite parser: regex-based, valid only for the flat toggle/add/remove/put/
// set/log/send/wait/show/hide subset with no blocks and no positional
// expressions.
const COMMAND_RE = /^(\w[\w-]*)\s*(.*)$/;
function parse(source) {
  const lines = source.split(/\n|then|and/).map(s => s.trim()).filter(Boolean);
  return lines.map(line => {
    const m = COMMAND_RE.exec(line);
    if (!m) return null;
    return { type: 'command', name: m[1], rest: m[2] };
  }).filter(Boolean);
}
`

const hybridParserTemplate = `
// hybrid parser: full recursive-descent, supports blocks and positional
// expressions.
function parse(source) {
  return hybridParseProgram(tokenize(source));
}
`

// commandTemplates hold one switch-case-style implementation per known
// command name, assembled verbatim into the COMMANDS map (spec.md §4.10
// point 3).
var commandTemplates = map[string]string{
	"toggle": "  toggle(ctx, target, cls) { target.classList.toggle(cls); },\n",
	"add":    "  add(ctx, target, cls) { target.classList.add(cls); },\n",
	"remove": "  remove(ctx, target, cls) { cls ? target.classList.remove(cls) : target.remove(); },\n",
	"set":    "  set(ctx, target, prop, value) { target[prop] = value; },\n",
	"put":    "  put(ctx, target, content) { target.innerHTML = content; },\n",
	"show":   "  show(ctx, target) { target.style.display = ''; },\n",
	"hide":   "  hide(ctx, target) { target.style.display = 'none'; },\n",
	"focus":  "  focus(ctx, target) { target.focus(); },\n",
	"blur":   "  blur(ctx, target) { target.blur(); },\n",
	"log":    "  log(ctx, ...args) { console.log(...args); },\n",
	"wait":   "  async wait(ctx, ms) { await helpers.wait(ms); },\n",
	"fetch":  "  async fetch(ctx, url, format) { ctx.it = await helpers['fetch' + format](url); },\n",
	"send":   "  send(ctx, target, name, detail) { helpers.send(target, name, detail); },\n",
	"trigger": "  trigger(ctx, target, name, detail) { helpers.send(target, name, detail); },\n",
	"increment": "  increment(ctx, name, by) { ctx.locals.set(name, (parseFloat(ctx.locals.get(name)) || 0) + (by ?? 1)); },\n",
	"decrement": "  decrement(ctx, name, by) { ctx.locals.set(name, (parseFloat(ctx.locals.get(name)) || 0) - (by ?? 1)); },\n",
	"halt":   "  halt(ctx) { throw HALT; },\n",
	"exit":   "  exit(ctx) { throw EXIT; },\n",
	"return": "  return(ctx, value) { throw { type: 'return', value }; },\n",
	"scroll": "  scroll(ctx, target, smooth) { target.scrollIntoView({ behavior: smooth ? 'smooth' : 'auto' }); },\n",
	"take":   "  take(ctx, target, cls) { document.querySelectorAll('.' + cls).forEach(e => e.classList.remove(cls)); target.classList.add(cls); },\n",
	"throw":  "  throw(ctx, msg) { throw new Error(msg ?? 'Error'); },\n",
	"default": "  default(ctx, name, value) { if (ctx.locals.get(name) == null) ctx.locals.set(name, value); },\n",
	"go":     "  go(ctx, url) { location.assign(url); },\n",
	"append": "  append(ctx, target, content) { target.insertAdjacentHTML('beforeend', content); },\n",
	"pick":   "  pick(ctx, coll) { const a = helpers.array(coll); ctx.it = a[Math.floor(Math.random() * a.length)]; },\n",
	"push-url": "  push_url(ctx, url) { history.pushState(null, '', url); },\n",
	"replace-url": "  replace_url(ctx, url) { history.replaceState(null, '', url); },\n",
	"get":    "  get(ctx, expr) { ctx.it = ctx.result = expr; },\n",
	"break":  "  break(ctx) { throw { type: 'break' }; },\n",
	"continue": "  continue(ctx) { throw { type: 'continue' }; },\n",
	"beep":   "  beep(ctx, ...args) { console.log('%c_', 'color: magenta', ...args); },\n",
	"js":     "  js(ctx, code) { return (new Function('ctx', code))(ctx); },\n",
	"copy":   "  async copy(ctx, text) { await navigator.clipboard.writeText(String(text)); },\n",
	"make":   "  make(ctx, tag) { ctx.it = document.createElement(tag); },\n",
	"swap":   "  swap(ctx, strategy, target, content) { helpers.swap(strategy, target, content); },\n",
	"morph":  "  morph(ctx, target, content) { helpers.domDiff(target, content); },\n",
	"transition": "  async transition(ctx, target, prop, value, dur, timing) { await helpers.transition(target, prop, value, dur ?? 300, timing ?? 'ease'); },\n",
	"measure": "  measure(ctx, target, prop) { const r = target.getBoundingClientRect(); return prop ? r[prop] : r; },\n",
	"settle": "  async settle(ctx, target, timeout) { await helpers.settle(target, timeout ?? 5000); },\n",
	"tell":   "  tell(ctx, target) { ctx.me = ctx.you = target; },\n",
	"async":  "  async async(ctx, body) { body(); },\n",
	"install": "  install(ctx, target, name, params) { helpers.installBehavior(target, name, params); },\n",
	"render": "  render(ctx, target, template, vars) { target.innerHTML = helpers.render(template, vars ?? {}); },\n",
}

// blockTemplates hold one implementation per known block kind (spec.md
// §4.10 point 4).
var blockTemplates = map[string]string{
	"if": "  if(ctx, cond, thenFn, elseFn) { if (cond) thenFn(); else if (elseFn) elseFn(); },\n",
	"repeat": "  repeat(ctx, count, bodyFn, max) { const n = Math.min(count ?? max, max); for (let i = 0; i < n; i++) { ctx.locals.set('index', i); bodyFn(); } },\n",
	"for": "  for(ctx, itemName, indexName, coll, bodyFn, max) { const a = Array.isArray(coll) ? coll : Array.from(coll); for (let i = 0; i < Math.min(a.length, max); i++) { ctx.locals.set(itemName, a[i]); ctx.locals.set(indexName, i); bodyFn(); } },\n",
	"while": "  while(ctx, condFn, bodyFn, max) { for (let i = 0; condFn() && i < max; i++) bodyFn(); },\n",
	"fetch": "  async fetch(ctx, url, format, thenFn) { ctx.it = await helpers['fetch' + format](url); thenFn(); },\n",
}
