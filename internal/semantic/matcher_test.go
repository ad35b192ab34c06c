package semantic

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(v string) lex.Token { return lex.Token{Kind: lex.KindIdentifier, Value: v} }

func TestMatch_englishDropTable(t *testing.T) {
	r := NewDDLRegistry()
	node, err := r.Match([]lex.Token{tok("drop-table"), tok("widgets")}, "en")
	require.NoError(t, err)
	assert.Equal(t, "drop-table", node.Action)
	assert.Equal(t, "widgets", node.Roles["table"].Value)
}

func TestMatch_spanishVSO(t *testing.T) {
	r := NewDDLRegistry()
	node, err := r.Match([]lex.Token{tok("eliminar-tabla"), tok("widgets")}, "es")
	require.NoError(t, err)
	assert.Equal(t, "drop-table", node.Action)
	assert.Equal(t, "widgets", node.Roles["table"].Value)
}

func TestMatch_japaneseSOV(t *testing.T) {
	r := NewDDLRegistry()
	node, err := r.Match([]lex.Token{tok("widgets"), tok("テーブル削除")}, "ja")
	require.NoError(t, err)
	assert.Equal(t, "drop-table", node.Action)
	assert.Equal(t, "widgets", node.Roles["table"].Value)
}

func TestMatch_greedyColumnsRole(t *testing.T) {
	r := NewDDLRegistry()
	tokens := []lex.Token{tok("create-table"), tok("widgets"), tok("with"), tok("id"), tok("int"), tok("name"), tok("text")}
	node, err := r.Match(tokens, "en")
	require.NoError(t, err)
	assert.Equal(t, "widgets", node.Roles["table"].Value)
	assert.Equal(t, "id int name text", node.Roles["columns"].Value)
}

func TestMatch_unknownLanguage(t *testing.T) {
	r := NewDDLRegistry()
	_, err := r.Match([]lex.Token{tok("drop-table")}, "xx")
	assert.Error(t, err)
}

func TestMatch_noRecognizedKeyword(t *testing.T) {
	r := NewDDLRegistry()
	_, err := r.Match([]lex.Token{tok("select"), tok("widgets")}, "en")
	assert.Error(t, err)
}

func TestMatch_missingPrimaryRole(t *testing.T) {
	r := NewDDLRegistry()
	_, err := r.Match([]lex.Token{tok("drop-table")}, "en")
	assert.Error(t, err)
}
