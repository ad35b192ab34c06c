package sqldsl

import (
	"testing"

	"github.com/codetalcott/hyperfixi/internal/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_dropTableEnglish(t *testing.T) {
	res := Compile("drop-table widgets", "en")
	require.True(t, res.OK)
	assert.Equal(t, `DROP TABLE IF EXISTS widgets`, res.Code)
}

func TestCompile_createTableWithColumns(t *testing.T) {
	res := Compile("create-table widgets with id int name text", "en")
	require.True(t, res.OK)
	assert.Contains(t, res.Code, `CREATE TABLE IF NOT EXISTS widgets`)
	assert.Contains(t, res.Code, `id INT`)
	assert.Contains(t, res.Code, `name TEXT`)
}

func TestCompile_spanishOutputIsAlwaysEnglishKeywordSQL(t *testing.T) {
	res := Compile("eliminar-tabla widgets", "es")
	require.True(t, res.OK)
	assert.Equal(t, `DROP TABLE IF EXISTS widgets`, res.Code)
}

func TestCompile_dropTableJapaneseMatchesEnglish(t *testing.T) {
	ja := Compile("widgets テーブル削除", "ja")
	en := Compile("drop-table widgets", "en")
	require.True(t, ja.OK)
	require.True(t, en.OK)
	assert.Equal(t, en.Code, ja.Code)
	assert.Equal(t, "DROP TABLE IF EXISTS widgets", ja.Code)
}

func TestCompile_reservedWordIdentifierIsQuoted(t *testing.T) {
	res := Compile("drop-table order", "en")
	require.True(t, res.OK)
	assert.Contains(t, res.Code, `"order"`)
}

func TestCompile_unrecognizedClauseReportsError(t *testing.T) {
	res := Compile("select * from widgets", "en")
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Errors)
}

func TestCompile_multilineMultipleStatements(t *testing.T) {
	res := Compile("drop-table a\ndrop-table b", "en")
	require.True(t, res.OK)
	assert.Contains(t, res.Code, `DROP TABLE IF EXISTS a`)
	assert.Contains(t, res.Code, `DROP TABLE IF EXISTS b`)
}

func TestRenderSQLiteMgmt_spanishVSO(t *testing.T) {
	node := &semantic.SemanticNode{
		Action: "drop-table",
		Roles:  map[string]semantic.RoleValue{"table": {Value: "widgets"}},
	}
	s, err := RenderSQLiteMgmt(node, "es")
	require.NoError(t, err)
	assert.Equal(t, "eliminar-tabla widgets", s)
}

func TestRenderSQLiteMgmt_japaneseSOV(t *testing.T) {
	node := &semantic.SemanticNode{
		Action: "drop-table",
		Roles:  map[string]semantic.RoleValue{"table": {Value: "widgets"}},
	}
	s, err := RenderSQLiteMgmt(node, "ja")
	require.NoError(t, err)
	assert.Equal(t, "widgets テーブル削除", s)
}
