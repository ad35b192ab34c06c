package analysis

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCyclomatic_flatBodyIsOne(t *testing.T) {
	n := &interchange.Event{Body: []interchange.Node{&interchange.Command{Name: "log"}}}
	assert.Equal(t, 1, CalculateCyclomatic(n))
}

func TestCalculateCyclomatic_countsDecisionPoints(t *testing.T) {
	n := &interchange.Event{Body: []interchange.Node{
		&interchange.If{Condition: &interchange.Literal{Value: true}, ThenBranch: []interchange.Node{
			&interchange.While{Condition: &interchange.Literal{Value: true}},
		}},
		&interchange.ForEach{Collection: &interchange.Variable{Name: "items"}},
	}}
	assert.Equal(t, 4, CalculateCyclomatic(n))
}

func TestCalculateCognitive_nestedIfAddsDepthPenalty(t *testing.T) {
	inner := &interchange.If{Condition: &interchange.Literal{Value: true}}
	outer := &interchange.If{Condition: &interchange.Literal{Value: true}, ThenBranch: []interchange.Node{inner}}
	// outer contributes 1 (depth 0), inner contributes 2 (depth 1) = 3
	assert.Equal(t, 3, CalculateCognitive(outer))
}

func TestCalculateCognitive_eventIncrementsNestingForChildren(t *testing.T) {
	n := &interchange.Event{Body: []interchange.Node{
		&interchange.If{Condition: &interchange.Literal{Value: true}},
	}}
	// event itself contributes 0, its child If is at depth 1: 1 + 1 = 2
	assert.Equal(t, 2, CalculateCognitive(n))
}

func TestCalculateCyclomatic_monotonicOverSubtrees(t *testing.T) {
	leaf := &interchange.If{Condition: &interchange.Literal{Value: true}}
	root := &interchange.Event{Body: []interchange.Node{leaf}}
	assert.GreaterOrEqual(t, CalculateCyclomatic(root), CalculateCyclomatic(leaf))
}
