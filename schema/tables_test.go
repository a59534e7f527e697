package schema

import (
	"testing"
)

func TestTables_DependencyOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Tables() {
		for _, c := range m.Columns {
			if c.ForeignKey == nil {
				continue
			}
			if !seen[c.ForeignKey.ReferencesTable] {
				t.Errorf("%s.%s references %s before it is declared", m.TableName, c.Name, c.ForeignKey.ReferencesTable)
			}
		}
		if seen[m.TableName] {
			t.Errorf("table %s declared twice", m.TableName)
		}
		seen[m.TableName] = true
	}
}

func TestTables_YearScoped(t *testing.T) {
	models := ByName(Tables())
	for table, dateCol := range YearScoped() {
		m, ok := models[table]
		if !ok {
			t.Fatalf("year-scoped table %s is not declared", table)
		}
		col, ok := m.Column("year_id")
		if !ok || col.ForeignKey == nil || col.ForeignKey.ReferencesTable != Years {
			t.Errorf("%s.year_id must reference years", table)
			continue
		}
		if col.ForeignKey.OnDelete != "CASCADE" {
			t.Errorf("%s.year_id must cascade on delete, got %q", table, col.ForeignKey.OnDelete)
		}
		if dateCol == "" {
			continue
		}
		dc, ok := m.Column(dateCol)
		if !ok || dc.Type != "date" {
			t.Errorf("%s.%s must be a date column", table, dateCol)
		}
	}
}

func TestTables_IndexesReferenceOwnColumns(t *testing.T) {
	for _, m := range Tables() {
		for _, idx := range m.Indexes {
			if idx.Table != m.TableName {
				t.Errorf("index %s declared on %s but targets %s", idx.Name, m.TableName, idx.Table)
			}
			for _, c := range idx.Columns {
				if _, ok := m.Column(c); !ok {
					t.Errorf("index %s uses unknown column %s.%s", idx.Name, m.TableName, c)
				}
			}
		}
		for _, c := range m.PrimaryKey {
			if _, ok := m.Column(c); !ok {
				t.Errorf("primary key of %s uses unknown column %s", m.TableName, c)
			}
		}
	}
}
