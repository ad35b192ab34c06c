package bundle

import "regexp"

// These patterns implement spec.md §4.10's "deterministic textual rewrite"
// from the typed template to the untyped flavor: it is shallow (regex-based,
// not an actual TS parse) because the bundled runtime was authored with
// that constraint in mind.
var (
	asCastRe         = regexp.MustCompile(`\s+as\s+[A-Za-z_][A-Za-z0-9_<>\[\].]*`)
	paramTypeRe      = regexp.MustCompile(`:\s*[A-Za-z_][A-Za-z0-9_<>\[\].| ]*([,)=])`)
	promiseGenericRe = regexp.MustCompile(`Promise<[^>]*>`)
)

// stripTypes applies the typed-to-untyped textual rewrite to typed source.
func stripTypes(typed string) string {
	out := asCastRe.ReplaceAllString(typed, "")
	out = promiseGenericRe.ReplaceAllString(out, "Promise")
	out = paramTypeRe.ReplaceAllString(out, "$1")
	return out
}
