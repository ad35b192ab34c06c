// Package sqldsl is the framework variant's SQL-DSL pipeline (spec.md
// §4.3/§6): multilingual tokenization feeds internal/semantic's
// pattern-matching front end, whose {action, roles} semantic node is then
// lowered to SQLite DDL. Output is always English-keyword standard SQLite
// DDL regardless of source language (spec.md §6).
//
// DDL is assembled with doug-martin/goqu/v9, the identifier-quoting SQL
// builder used by the rakunlabs-at example repo's persistence layer. goqu
// has no dedicated CREATE/DROP TABLE builder, so it is used here the way
// that repo uses it for dynamic queries: to produce dialect-correct quoted
// identifiers, which the DDL statements are then assembled around.
package sqldsl

import (
	"regexp"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/hferrors"
	"github.com/codetalcott/hyperfixi/internal/semantic"
	"github.com/doug-martin/goqu/v9"
)

// CompileResult mirrors spec.md §6's SQL-DSL external interface:
// `{ok: true, code}` or `{ok: false, errors}`.
type CompileResult struct {
	OK     bool
	Code   string
	Errors []string
}

var simpleIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteReservedWords is a small subset of SQLite's keyword list: the ones a
// table/column name written in this DSL is plausibly likely to collide with.
var sqliteReservedWords = map[string]bool{
	"order": true, "group": true, "select": true, "table": true,
	"index": true, "where": true, "from": true, "key": true,
	"column": true, "default": true, "transaction": true,
}

// quoteIdent returns name unquoted when it is a plain, non-reserved
// identifier, and dialect-quoted via goqu's query builder otherwise
// (reserved words, spaces, punctuation).
func quoteIdent(name string) string {
	if simpleIdentRe.MatchString(name) && !sqliteReservedWords[strings.ToLower(name)] {
		return name
	}
	sql, _, err := goqu.Dialect("sqlite").From(goqu.T(name)).ToSQL()
	if err != nil {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return strings.TrimPrefix(sql, "SELECT * FROM ")
}

var registry = semantic.NewDDLRegistry()

// Compile implements spec.md §6's `compile(source, languageCode)`: parses
// one DSL clause per line and emits semicolon-separated SQLite DDL.
func Compile(source, languageCode string) CompileResult {
	var statements []string
	var errs []string

	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens := tokenize(line)
		node, err := registry.Match(tokens, languageCode)
		if err != nil {
			errs = append(errs, hferrors.HumanMessage(hferrors.New(hferrors.CodeCompileError, err.Error(), "")))
			continue
		}
		stmt, err := renderDDL(node)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		statements = append(statements, stmt)
	}

	if len(errs) > 0 {
		return CompileResult{OK: false, Errors: errs}
	}
	return CompileResult{OK: true, Code: strings.Join(statements, ";\n")}
}

func renderDDL(node *semantic.SemanticNode) (string, error) {
	table, ok := node.Roles["table"]
	if !ok {
		return "", hferrors.New(hferrors.CodeCompileError, "missing table role for action "+node.Action, "")
	}
	tableIdent := quoteIdent(table.Value)

	switch node.Action {
	case "drop-table":
		return "DROP TABLE IF EXISTS " + tableIdent, nil
	case "create-table":
		cols, ok := node.Roles["columns"]
		if !ok {
			return "", hferrors.New(hferrors.CodeCompileError, "missing columns role for create-table", "")
		}
		return "CREATE TABLE IF NOT EXISTS " + tableIdent + " (" + renderColumns(cols.Value) + ")", nil
	case "add-column":
		col, ok := node.Roles["column"]
		if !ok {
			return "", hferrors.New(hferrors.CodeCompileError, "missing column role for add-column", "")
		}
		return "ALTER TABLE " + tableIdent + " ADD COLUMN " + quoteIdent(col.Value), nil
	case "rename-table":
		newName, ok := node.Roles["newName"]
		if !ok {
			return "", hferrors.New(hferrors.CodeCompileError, "missing newName role for rename-table", "")
		}
		return "ALTER TABLE " + tableIdent + " RENAME TO " + quoteIdent(newName.Value), nil
	default:
		return "", hferrors.New(hferrors.CodeCompileError, "unsupported DDL action "+node.Action, "")
	}
}

// renderColumns turns "id int name text" pairs into a quoted column-def
// list; types pass through as SQLite's dynamic typing accepts any type name.
func renderColumns(raw string) string {
	fields := strings.Fields(raw)
	var defs []string
	for i := 0; i+1 < len(fields); i += 2 {
		defs = append(defs, quoteIdent(fields[i])+" "+strings.ToUpper(fields[i+1]))
	}
	return strings.Join(defs, ", ")
}
