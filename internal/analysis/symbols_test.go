package analysis

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func TestSymbols_collectsHandlersVariablesCommands(t *testing.T) {
	nodes := []interchange.Node{
		&interchange.Event{Event: "click", Body: []interchange.Node{
			&interchange.Command{Name: "set", Args: []interchange.Node{
				&interchange.Variable{Name: "count", Scope: interchange.ScopeLocal},
			}},
		}},
	}
	syms := Symbols(nodes)
	var kinds []SymbolKind
	for _, s := range syms {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, SymbolHandler)
	assert.Contains(t, kinds, SymbolCommand)
	assert.Contains(t, kinds, SymbolVariable)
}

func TestSymbols_emptyTreeYieldsNoSymbols(t *testing.T) {
	assert.Empty(t, Symbols(nil))
}
