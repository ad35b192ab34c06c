package sqldsl

import "github.com/codetalcott/hyperfixi/internal/lex"

// tokenize splits a DSL clause into whitespace-delimited tokens. Unlike
// internal/lex's character-by-character scanner (built for the primary hscript
// grammar), the multilingual DSL variant's keywords are always
// single tokens regardless of script (spec.md §4.3's single-token
// invariant), so plain whitespace splitting is sufficient here — there is
// no operator/string/number grammar to recognize.
func tokenize(source string) []lex.Token {
	var tokens []lex.Token
	start := -1
	line, col := 1, 0
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, lex.Token{
				Kind: lex.KindIdentifier, Value: source[start:end],
				Position: lex.Position{Line: line, Column: col, Valid: true},
			})
			start = -1
		}
	}
	for i, r := range source {
		switch r {
		case ' ', '\t', '\n', '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
		col++
		if r == '\n' {
			line++
			col = 0
		}
	}
	flush(len(source))
	return tokens
}
