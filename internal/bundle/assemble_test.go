package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_liteFeasibleSelectsLiteParser(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"toggle", "set"}}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "lite parser")
}

func TestAssemble_blocksForceHybridParser(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"toggle"}, Blocks: []string{"if"}}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "hybrid parser")
}

func TestAssemble_defaultModeDropsUnknownWithWarning(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"toggle", "nonexistent"}}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"toggle"}, res.Commands)
	assert.Len(t, res.Warnings, 1)
}

func TestAssemble_strictModeFailsOnUnknown(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"toggle", "nonexistent"}, Validation: ValidationConfig{Strict: true}}
	_, err := Assemble(cfg)
	assert.Error(t, err)
}

func TestAssemble_helperClosureIncludesTransitiveHelpers(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"fetch", "morph"}, Blocks: []string{"fetch"}}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "fetchJSON")
	assert.Contains(t, res.Code, "domDiff")
}

func TestAssemble_untypedStripsTypeAnnotations(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"set"}, Format: FormatUntyped}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.NotContains(t, res.Code, "Promise<")
}

func TestAssemble_missingNameFailsValidation(t *testing.T) {
	cfg := Config{Commands: []string{"set"}}
	_, err := Assemble(cfg)
	assert.Error(t, err)
}

func TestAssemble_autoInitEmitsListener(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"set"}, AutoInit: true}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "DOMContentLoaded")
}

func TestAssemble_htmxIntegrationAddsAfterSettleHook(t *testing.T) {
	cfg := Config{Name: "widget", Commands: []string{"set"}, HtmxIntegration: true}
	res, err := Assemble(cfg)
	require.NoError(t, err)
	assert.Contains(t, res.Code, "afterSettle")
}
