package schema

type Model struct {
	TableName  string
	Columns    []Column
	PrimaryKey []string // composite primary key; single-column keys use Column.Primary
	Indexes    []Index
}

type Column struct {
	Name       string
	Type       string
	Primary    bool
	Unique     bool
	NotNull    bool
	Default    *string
	ForeignKey *ForeignKey
}

type ForeignKey struct {
	ReferencesTable  string
	ReferencesColumn string
	OnDelete         string // CASCADE, SET NULL, RESTRICT, etc.
	OnUpdate         string // CASCADE, SET NULL, RESTRICT, etc.
}

type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Type    string // btree, hash, gin, etc.
}

// Column looks up a column by name.
func (m Model) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ByName indexes models by table name.
func ByName(models []Model) map[string]Model {
	out := make(map[string]Model, len(models))
	for _, m := range models {
		out[m.TableName] = m
	}
	return out
}
