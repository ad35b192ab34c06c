package sqldsl

import (
	"fmt"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/semantic"
)

// RenderSQLiteMgmt implements spec.md §6's inverse function: given a
// semantic node, produce a natural-language surface string in the target
// language's keyword table and word order.
func RenderSQLiteMgmt(node *semantic.SemanticNode, languageCode string) (string, error) {
	profile, ok := profileByLanguage(languageCode)
	if !ok {
		return "", fmt.Errorf("sqldsl: unknown language profile %q", languageCode)
	}
	keyword, ok := profile.Keywords[node.Action]
	if !ok {
		return "", fmt.Errorf("sqldsl: action %q has no %q surface form", node.Action, languageCode)
	}

	table := node.Roles["table"].Value
	var operands []string
	switch node.Action {
	case "drop-table":
		operands = []string{table}
	case "create-table":
		operands = []string{table, node.Roles["columns"].Value}
	case "add-column":
		operands = []string{table, node.Roles["column"].Value}
	case "rename-table":
		operands = []string{table, node.Roles["newName"].Value}
	default:
		operands = []string{table}
	}

	switch profile.WordOrder {
	case semantic.SOV:
		return strings.Join(operands, " ") + " " + keyword, nil
	case semantic.VSO:
		return keyword + " " + strings.Join(operands, " "), nil
	default: // SVO
		if len(operands) == 0 {
			return keyword, nil
		}
		return operands[0] + " " + keyword + " " + strings.Join(operands[1:], " "), nil
	}
}

func profileByLanguage(code string) (semantic.Profile, bool) {
	for _, p := range semantic.DDLProfiles() {
		if p.Language == code {
			return p, true
		}
	}
	return semantic.Profile{}, false
}
