package analysis

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func TestCompletions_includesKnownCommands(t *testing.T) {
	comps := Completions(nil, Position{Line: 1, Column: 0})
	var labels []string
	for _, c := range comps {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "set")
	assert.Contains(t, labels, "fetch")
}

func TestCompletions_includesInScopeVariablesAndEvents(t *testing.T) {
	nodes := []interchange.Node{
		&interchange.Event{Event: "click", NodeSpan: span(1, 0, 0, 0), Body: []interchange.Node{
			&interchange.Variable{Name: "count", Scope: interchange.ScopeLocal, NodeSpan: span(2, 0, 10, 15)},
		}},
	}
	comps := Completions(nodes, Position{Line: 3, Column: 0})
	var found bool
	for _, c := range comps {
		if c.Kind == CompletionVariable && c.Label == "count" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompletions_excludesOutOfScopeVariable(t *testing.T) {
	nodes := []interchange.Node{
		&interchange.Variable{Name: "later", Scope: interchange.ScopeLocal, NodeSpan: span(10, 0, 100, 105)},
	}
	comps := Completions(nodes, Position{Line: 1, Column: 0})
	for _, c := range comps {
		assert.NotEqual(t, "later", c.Label)
	}
}
