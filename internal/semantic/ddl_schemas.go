package semantic

// DDLSchemas returns the command schemas behind the SQL-DSL variant
// (spec.md §4.3/§6): a small, fixed set of DDL actions, each with a
// "table" role and (for create-table) a greedy "columns" role that
// swallows the column-definition remainder.
func DDLSchemas() []CommandSchema {
	return []CommandSchema{
		{
			Action: "drop-table",
			Roles: []Role{
				{Name: "table", SVOPosition: 1, SOVPosition: 0, VSOPosition: 0},
			},
			PrimaryRole: "table",
		},
		{
			Action: "create-table",
			Roles: []Role{
				{Name: "table", SVOPosition: 0, SOVPosition: 0, VSOPosition: 0},
				{Name: "columns", SVOPosition: 1, SOVPosition: 1, VSOPosition: 1, Marker: "with", Greedy: true},
			},
			PrimaryRole: "table",
		},
		{
			Action: "add-column",
			Roles: []Role{
				{Name: "table", SVOPosition: 0, SOVPosition: 0, VSOPosition: 0, Marker: "to"},
				{Name: "column", SVOPosition: 1, SOVPosition: 1, VSOPosition: 1},
			},
			PrimaryRole: "table",
		},
		{
			Action: "rename-table",
			Roles: []Role{
				{Name: "table", SVOPosition: 0, SOVPosition: 0, VSOPosition: 0},
				{Name: "newName", SVOPosition: 1, SOVPosition: 1, VSOPosition: 1, Marker: "to"},
			},
			PrimaryRole: "table",
		},
	}
}

// DDLProfiles returns the per-language surfaces spec.md §4.3 names as
// examples (`drop-table` -> `eliminar-tabla`, `テーブル削除`, `احذف-جدول`)
// plus English, each keeping the single-token keyword invariant: Spanish
// hyphenates, Japanese concatenates, Arabic hyphenates.
func DDLProfiles() []Profile {
	return []Profile{
		{
			Language:  "en",
			WordOrder: VSO,
			Keywords: map[string]string{
				"drop-table":   "drop-table",
				"create-table": "create-table",
				"add-column":   "add-column",
				"rename-table": "rename-table",
			},
		},
		{
			Language:  "es",
			WordOrder: VSO,
			Keywords: map[string]string{
				"drop-table":   "eliminar-tabla",
				"create-table": "crear-tabla",
				"add-column":   "agregar-columna",
				"rename-table": "renombrar-tabla",
			},
		},
		{
			Language:  "ja",
			WordOrder: SOV,
			Keywords: map[string]string{
				"drop-table":   "テーブル削除",
				"create-table": "テーブル作成",
				"add-column":   "列追加",
				"rename-table": "テーブル名変更",
			},
		},
		{
			Language:  "ar",
			WordOrder: VSO,
			Keywords: map[string]string{
				"drop-table":   "احذف-جدول",
				"create-table": "انشئ-جدول",
				"add-column":   "اضف-عمود",
				"rename-table": "غير-اسم-جدول",
			},
		},
	}
}

// NewDDLRegistry builds a Registry pre-loaded with the DDL schema/profile
// set, the common entry point for internal/sqldsl.
func NewDDLRegistry() *Registry {
	r := NewRegistry()
	for _, s := range DDLSchemas() {
		r.AddSchema(s)
	}
	for _, p := range DDLProfiles() {
		r.AddProfile(p)
	}
	return r
}
