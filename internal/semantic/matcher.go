package semantic

import (
	"fmt"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/lex"
)

// MatchError reports a pattern-matching failure: no profile for the
// language, an empty clause, no token naming a registered schema's action,
// or no token left to fill the schema's primary role.
type MatchError struct {
	Language string
	Reason   string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("semantic: %s (%s)", e.Reason, e.Language)
}

// Registry holds the schema set and the per-language profiles that surface
// it, mirroring the teacher's dispatch-table-by-name registries
// (internal/tunascript/builtins.go) but keyed by action name instead of
// builtin function name.
type Registry struct {
	schemas  map[string]CommandSchema
	profiles map[string]Profile
}

// NewRegistry builds an empty registry; callers add schemas/profiles before
// matching.
func NewRegistry() *Registry {
	return &Registry{schemas: map[string]CommandSchema{}, profiles: map[string]Profile{}}
}

func (r *Registry) AddSchema(s CommandSchema) { r.schemas[s.Action] = s }
func (r *Registry) AddProfile(p Profile)      { r.profiles[p.Language] = p }

// Match runs front-end B over a pre-tokenized clause: normalize the leading
// keyword to its canonical action, look up that action's schema, then fill
// roles positionally according to the profile's word order. Non-keyword
// tokens are treated as whitespace-joined text content for role values.
func (r *Registry) Match(tokens []lex.Token, languageCode string) (*SemanticNode, error) {
	profile, ok := r.profiles[languageCode]
	if !ok {
		return nil, &MatchError{Language: languageCode, Reason: "unknown language profile"}
	}
	if len(tokens) == 0 {
		return nil, &MatchError{Language: languageCode, Reason: "empty clause"}
	}

	keywordIdx, action := r.findKeyword(tokens, profile)
	if keywordIdx < 0 {
		return nil, &MatchError{Language: languageCode, Reason: "no recognized action keyword"}
	}
	schema, ok := r.schemas[action]
	if !ok {
		return nil, &MatchError{Language: languageCode, Reason: fmt.Sprintf("unregistered action %q", action)}
	}

	operands := append(append([]lex.Token{}, tokens[:keywordIdx]...), tokens[keywordIdx+1:]...)
	node := &SemanticNode{Action: action, Roles: map[string]RoleValue{}}
	if len(tokens) > 0 {
		node.Span = tokens[0].Position
	}

	ordered := orderRoles(schema.Roles, profile.WordOrder)
	cursor := 0
	for _, role := range ordered {
		if cursor >= len(operands) {
			continue
		}
		if role.Marker != "" && cursor < len(operands) && operands[cursor].Value == role.Marker {
			cursor++
		}
		if cursor >= len(operands) {
			continue
		}
		if role.Greedy {
			text := joinTokens(operands[cursor:])
			node.Roles[role.Name] = RoleValue{Value: text, Nodes: append([]lex.Token{}, operands[cursor:]...)}
			cursor = len(operands)
			continue
		}
		node.Roles[role.Name] = RoleValue{Value: operands[cursor].Value, Nodes: []lex.Token{operands[cursor]}}
		cursor++
	}

	if schema.PrimaryRole != "" {
		if _, ok := node.Roles[schema.PrimaryRole]; !ok {
			return nil, &MatchError{Language: languageCode, Reason: fmt.Sprintf("missing primary role %q for action %q", schema.PrimaryRole, action)}
		}
	}

	return node, nil
}

// findKeyword scans for the first token whose canonical action is
// registered, since SVO/VSO profiles put the keyword at different
// positions than SOV ones.
func (r *Registry) findKeyword(tokens []lex.Token, profile Profile) (int, string) {
	for i, tok := range tokens {
		action := profile.canonicalAction(tok.Value)
		if _, ok := r.schemas[action]; ok {
			return i, action
		}
	}
	return -1, ""
}

// orderRoles sorts a schema's roles by the position index matching the
// given word order, so Match fills them left-to-right.
func orderRoles(roles []Role, order WordOrder) []Role {
	sorted := append([]Role{}, roles...)
	pos := func(r Role) int {
		switch order {
		case SOV:
			return r.SOVPosition
		case VSO:
			return r.VSOPosition
		default:
			return r.SVOPosition
		}
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && pos(sorted[j]) < pos(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

func joinTokens(tokens []lex.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}
