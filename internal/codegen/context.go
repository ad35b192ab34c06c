// Package codegen lowers interchange nodes (internal/interchange) to
// target-language (JS/TS) source text, per spec.md §4.7-§4.9. It never
// executes generated code — the core is a compiler, not a runtime
// (spec.md §1's Non-goals).
package codegen

import "fmt"

// CachePolicy controls whether selector lowering may reuse a cached
// querySelector result instead of re-querying the DOM on every reference.
type CachePolicy int

const (
	// CacheNone never caches; every selector reference re-queries.
	CacheNone CachePolicy = iota
	// CacheWhenSafe caches a selector the first time it's referenced within
	// a handler body, as long as no intervening command could invalidate
	// the DOM subtree it resolves against.
	CacheWhenSafe
)

// Context is the single mutable object threaded through one compile
// invocation (spec.md §5: "the only mutable object is the codegen context,
// scoped to one compile invocation"). It is never shared across goroutines
// or across compilations.
type Context struct {
	HandlerID string

	CachePolicy CachePolicy

	MaxLoopIterations int

	nextID int

	// requiredHelpers is write-mostly during traversal: commands/expressions
	// declare helpers as they're lowered, and the assembler reads the set
	// once, after traversal completes (spec.md §5).
	requiredHelpers map[string]bool

	// cachedSelectors records which selector strings have already emitted a
	// cached lookup within this handler, for CacheWhenSafe.
	cachedSelectors map[string]string
}

// NewContext builds a fresh per-compile Context. handlerID identifies the
// handler being compiled, used to namespace generated local variable names.
func NewContext(handlerID string) *Context {
	return &Context{
		HandlerID:         handlerID,
		CachePolicy:       CacheWhenSafe,
		MaxLoopIterations: 1000,
		requiredHelpers:   map[string]bool{},
		cachedSelectors:   map[string]string{},
	}
}

// RequireHelper records that the emitted bundle must include the named
// runtime helper.
func (c *Context) RequireHelper(name string) { c.requiredHelpers[name] = true }

// RequiredHelpers returns the closure of helpers this compile required, in
// no particular order. Safe to call only after traversal completes.
func (c *Context) RequiredHelpers() []string {
	out := make([]string, 0, len(c.requiredHelpers))
	for h := range c.requiredHelpers {
		out = append(out, h)
	}
	return out
}

// FreshID returns a handler-scoped unique identifier, e.g. for loop index
// variables.
func (c *Context) FreshID(prefix string) string {
	c.nextID++
	return fmt.Sprintf("%s_%s%d", prefix, c.HandlerID, c.nextID)
}

// CachedSelector returns a prior cached variable name for sel, and whether
// one exists.
func (c *Context) CachedSelector(sel string) (string, bool) {
	if c.CachePolicy != CacheWhenSafe {
		return "", false
	}
	v, ok := c.cachedSelectors[sel]
	return v, ok
}

// CacheSelector records that sel has been cached into the given variable.
func (c *Context) CacheSelector(sel, varName string) {
	if c.CachePolicy == CacheWhenSafe {
		c.cachedSelectors[sel] = varName
	}
}

// InvalidateSelectorCache drops all cached selectors. Called by commands
// that mutate the DOM in a way that could make a cached lookup stale
// (e.g. put, swap, morph).
func (c *Context) InvalidateSelectorCache() {
	c.cachedSelectors = map[string]string{}
}
