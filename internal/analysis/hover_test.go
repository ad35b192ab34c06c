package analysis

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(line, col, start, end int) interchange.Span {
	return interchange.Span{Line: line, Column: col, Start: start, End: end, Present: true}
}

func TestHoverAt_picksSmallestOverlappingNode(t *testing.T) {
	inner := &interchange.Variable{Name: "count", Scope: interchange.ScopeLocal, NodeSpan: span(1, 4, 4, 9)}
	outer := &interchange.Command{Name: "set", Args: []interchange.Node{inner}, NodeSpan: span(1, 0, 0, 9)}
	h := HoverAt([]interchange.Node{outer}, Position{Line: 1, Column: 5})
	require.NotNil(t, h)
	assert.Contains(t, h.Text, "count")
}

func TestHoverAt_noOverlapReturnsNil(t *testing.T) {
	n := &interchange.Command{Name: "set", NodeSpan: span(1, 0, 0, 3)}
	h := HoverAt([]interchange.Node{n}, Position{Line: 5, Column: 0})
	assert.Nil(t, h)
}

func TestHoverAt_missingSpanNeverMatches(t *testing.T) {
	n := &interchange.Command{Name: "set"}
	h := HoverAt([]interchange.Node{n}, Position{Line: 1, Column: 0})
	assert.Nil(t, h)
}

func TestHoverAt_pureSameInputSameOutput(t *testing.T) {
	n := &interchange.Command{Name: "set", NodeSpan: span(1, 0, 0, 3)}
	a := HoverAt([]interchange.Node{n}, Position{Line: 1, Column: 1})
	b := HoverAt([]interchange.Node{n}, Position{Line: 1, Column: 1})
	assert.Equal(t, a, b)
}
