package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func Test_Tokenize_kindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Kind
	}{
		{name: "empty", input: "", expect: []Kind{KindEOF}},
		{name: "local var", input: ":count", expect: []Kind{KindLocalVar, KindEOF}},
		{name: "global var", input: "$count", expect: []Kind{KindGlobalVar, KindEOF}},
		{name: "class selector", input: ".foo", expect: []Kind{KindSelector, KindEOF}},
		{name: "id selector", input: "#foo", expect: []Kind{KindSelector, KindEOF}},
		{name: "modifier dot", input: ".debounce", expect: []Kind{KindSymbol, KindKeyword, KindEOF}},
		{name: "style property", input: "*opacity", expect: []Kind{KindStyleProperty, KindEOF}},
		{name: "element selector", input: "<div.card/>", expect: []Kind{KindSelector, KindEOF}},
		{name: "number with unit", input: "300ms", expect: []Kind{KindNumber, KindEOF}},
		{name: "negative number", input: "-12", expect: []Kind{KindNumber, KindEOF}},
		{name: "quoted string", input: `"hello"`, expect: []Kind{KindString, KindEOF}},
		{name: "possessive", input: "me's value", expect: []Kind{KindKeyword, KindOperator, KindIdentifier, KindEOF}},
		{name: "comment skipped", input: "-- a comment\nset", expect: []Kind{KindIdentifier, KindEOF}},
		{name: "two char operators", input: "== != <= >= && ||", expect: []Kind{
			KindOperator, KindOperator, KindOperator, KindOperator, KindOperator, KindOperator, KindEOF,
		}},
		{name: "array literal opener", input: "[1, 2]", expect: []Kind{
			KindSymbol, KindNumber, KindSymbol, KindNumber, KindSymbol, KindEOF,
		}},
		{name: "attribute selector", input: "[data-foo='bar']", expect: []Kind{KindSelector, KindEOF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			toks := Tokenize(tc.input)
			assert.Equal(tc.expect, kinds(toks))
		})
	}
}

func Test_Tokenize_neverFails_unknownCharsSkipped(t *testing.T) {
	assert := assert.New(t)
	toks := Tokenize("set  ~ :x to 1")
	assert.Equal([]Kind{KindIdentifier, KindLocalVar, KindKeyword, KindNumber, KindEOF}, kinds(toks))
}
