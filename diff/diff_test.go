package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/schema"
)

func opTypes(ops []Operation) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, string(op.Type)+" "+op.TableName)
	}
	return out
}

func TestDiffSchemas_EmptyDatabaseCreatesEverything(t *testing.T) {
	models := schema.Tables()
	ops := DiffSchemas(models, nil)

	creates := 0
	indexes := 0
	for _, op := range ops {
		switch op.Type {
		case CreateTable:
			creates++
		case CreateIndex:
			indexes++
		default:
			t.Errorf("unexpected operation %s on %s", op.Type, op.TableName)
		}
	}
	if creates != len(models) {
		t.Errorf("CREATE_TABLE count = %d, want %d", creates, len(models))
	}
	if indexes != 4 {
		t.Errorf("CREATE_INDEX count = %d, want 4", indexes)
	}
}

func TestDiffSchemas_IgnoresBookkeepingTables(t *testing.T) {
	existing := []introspect.ExistingTable{{TableName: "schema_migrations"}, {TableName: "legacy"}}
	models := []schema.Model{{TableName: "years", Columns: []schema.Column{{Name: "id", Type: "serial"}}}}

	got := opTypes(DiffSchemas(models, existing, "schema_migrations"))
	want := []string{"CREATE_TABLE years", "DROP_TABLE legacy"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffSchemas_ColumnsKeysAndIndexes(t *testing.T) {
	models := []schema.Model{{
		TableName: "calendar",
		Columns: []schema.Column{
			{Name: "id", Type: "serial", Primary: true},
			{Name: "year_id", Type: "integer", ForeignKey: &schema.ForeignKey{ReferencesTable: "years", ReferencesColumn: "id", OnDelete: "CASCADE"}},
			{Name: "event", Type: "varchar(255)"},
		},
		Indexes: []schema.Index{{Name: "ix_calendar_event", Table: "calendar", Columns: []string{"event"}}},
	}}

	t.Run("in sync", func(t *testing.T) {
		existing := []introspect.ExistingTable{{
			TableName: "calendar",
			Columns:   []introspect.ExistingColumn{{ColumnName: "id"}, {ColumnName: "year_id"}, {ColumnName: "event"}},
			ForeignKeys: []introspect.ExistingForeignKey{{
				ConstraintName: "calendar_year_id_fkey", ColumnName: "year_id",
				ReferencesTable: "years", ReferencesColumn: "id", OnDelete: "CASCADE", OnUpdate: "NO ACTION",
			}},
			Indexes: []introspect.ExistingIndex{{IndexName: "ix_calendar_event", TableName: "calendar"}},
		}}
		if ops := DiffSchemas(models, existing); len(ops) != 0 {
			t.Errorf("expected no operations, got %v", opTypes(ops))
		}
	})

	t.Run("drifted", func(t *testing.T) {
		existing := []introspect.ExistingTable{{
			TableName: "calendar",
			Columns:   []introspect.ExistingColumn{{ColumnName: "id"}, {ColumnName: "year_id"}, {ColumnName: "legacy"}},
			ForeignKeys: []introspect.ExistingForeignKey{{
				ConstraintName: "calendar_year_id_fkey", ColumnName: "year_id",
				ReferencesTable: "years", ReferencesColumn: "id", OnDelete: "NO ACTION", OnUpdate: "NO ACTION",
			}},
			Indexes: []introspect.ExistingIndex{{IndexName: "ix_old", TableName: "calendar"}},
		}}

		ops := DiffSchemas(models, existing)
		want := []string{
			"ADD_COLUMN calendar",
			"DROP_COLUMN calendar",
			"DROP_FOREIGN_KEY calendar",
			"ADD_FOREIGN_KEY calendar",
			"CREATE_INDEX calendar",
			"DROP_INDEX calendar",
		}
		if diff := cmp.Diff(want, opTypes(ops)); diff != "" {
			t.Fatalf("ops mismatch (-want +got):\n%s", diff)
		}
		if ops[0].Column.Name != "event" || ops[1].ColumnName != "legacy" {
			t.Errorf("wrong columns: add %q drop %q", ops[0].Column.Name, ops[1].ColumnName)
		}
		if ops[2].FKName != "calendar_year_id_fkey" {
			t.Errorf("dropped FK = %q", ops[2].FKName)
		}
	})
}
