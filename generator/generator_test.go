package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ridoystarlord/lifeplan/diff"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/stretchr/testify/require"
)

func TestGenerateSQL_CreateTableWithCompositeKey(t *testing.T) {
	var model schema.Model
	for _, m := range schema.Tables() {
		if m.TableName == schema.ReadingAuthor {
			model = m
		}
	}

	stmts, err := GenerateSQL([]diff.Operation{{
		Type:       diff.CreateTable,
		TableName:  model.TableName,
		Columns:    model.Columns,
		PrimaryKey: model.PrimaryKey,
	}})
	require.NoError(t, err)

	want := `CREATE TABLE "reading_authors" (
  "reading_id" integer NOT NULL REFERENCES "reading" ("id") ON DELETE CASCADE,
  "author_id" integer NOT NULL REFERENCES "authors" ("id") ON DELETE CASCADE,
  PRIMARY KEY ("reading_id", "author_id")
);`
	if diff := cmp.Diff([]string{want}, stmts); diff != "" {
		t.Errorf("SQL mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSQL_AlterOperations(t *testing.T) {
	def := "false"
	fk := &schema.ForeignKey{ReferencesTable: "years", ReferencesColumn: "id", OnDelete: "CASCADE"}
	ops := []diff.Operation{
		{Type: diff.AddColumn, TableName: "goals", Column: &schema.Column{Name: "archived", Type: "boolean", NotNull: true, Default: &def}},
		{Type: diff.AddForeignKey, TableName: "calendar", ColumnName: "year_id", ForeignKey: fk},
		{Type: diff.CreateIndex, TableName: "authors", Index: &schema.Index{Name: "ux_authors_name", Columns: []string{"name"}, Unique: true}},
		{Type: diff.DropIndex, TableName: "authors", IndexName: "ix_old"},
	}

	up, err := GenerateSQL(ops)
	require.NoError(t, err)
	require.Equal(t, []string{
		`ALTER TABLE "goals" ADD COLUMN "archived" boolean NOT NULL DEFAULT false;`,
		`ALTER TABLE "calendar" ADD CONSTRAINT "fk_calendar_year_id" FOREIGN KEY ("year_id") REFERENCES "years" ("id") ON DELETE CASCADE;`,
		`CREATE UNIQUE INDEX "ux_authors_name" ON "authors" ("name");`,
		`DROP INDEX IF EXISTS "ix_old";`,
	}, up)

	down, err := GenerateRollbackSQL(ops)
	require.NoError(t, err)
	require.Equal(t, []string{
		`-- cannot restore dropped index "ix_old"`,
		`DROP INDEX IF EXISTS "ux_authors_name";`,
		`ALTER TABLE "calendar" DROP CONSTRAINT "fk_calendar_year_id";`,
		`ALTER TABLE "goals" DROP COLUMN "archived";`,
	}, down)
}

func TestGenerateSQL_Unsupported(t *testing.T) {
	_, err := GenerateSQL([]diff.Operation{{Type: "RENAME_TABLE"}})
	require.Error(t, err)
}

func TestWriteMigrationFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := WriteMigrationFile(dir, now, []string{`CREATE TABLE "x" ("id" serial PRIMARY KEY);`}, []string{`DROP TABLE IF EXISTS "x";`})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260102030405_migration.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	up := strings.Index(content, runner.UpMarker)
	down := strings.Index(content, runner.DownMarker)
	require.True(t, up >= 0 && down > up, "markers out of order:\n%s", content)
	require.Contains(t, content[up:down], `CREATE TABLE "x"`)
	require.Contains(t, content[down:], `DROP TABLE IF EXISTS "x";`)
}
