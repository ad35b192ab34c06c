package analysis

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_emptyConditionalIsInfo(t *testing.T) {
	nodes := []interchange.Node{&interchange.If{Condition: &interchange.Literal{Value: true}}}
	diags := Diagnostics(nodes, DiagnosticsOptions{})
	assert.Len(t, diags, 1)
	assert.Equal(t, SeverityInfo, diags[0].Severity)
}

func TestDiagnostics_complexityThresholdWarns(t *testing.T) {
	var body []interchange.Node
	for i := 0; i < 12; i++ {
		body = append(body, &interchange.If{
			Condition: &interchange.Literal{Value: true},
			ThenBranch: []interchange.Node{&interchange.Command{Name: "log"}},
		})
	}
	handler := &interchange.Event{Event: "click", Body: body}
	diags := Diagnostics([]interchange.Node{handler}, DiagnosticsOptions{CyclomaticThreshold: 10})
	found := false
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDiagnostics_unnamedCommandIsError(t *testing.T) {
	nodes := []interchange.Node{&interchange.Command{}}
	diags := Diagnostics(nodes, DiagnosticsOptions{})
	assert.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestDiagnostics_pureSameInputSameOutput(t *testing.T) {
	nodes := []interchange.Node{&interchange.Command{Name: "log"}}
	a := Diagnostics(nodes, DiagnosticsOptions{})
	b := Diagnostics(nodes, DiagnosticsOptions{})
	assert.Equal(t, a, b)
}
