package runner

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ridoystarlord/lifeplan/migrations"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/stretchr/testify/require"
)

const sample = `-- Migration: 0001
-- Description: sample

-- Up Migration
-- ============
CREATE TABLE "a" ("id" serial PRIMARY KEY);
ALTER TABLE "a" ADD COLUMN "b" text;

-- Down Migration (Rollback)
-- =======================
DROP TABLE IF EXISTS "a";
`

func TestParseMigration(t *testing.T) {
	m, err := ParseMigration("0001.sql", sample)
	require.NoError(t, err)
	require.Equal(t, "0001.sql", m.Name)
	require.Equal(t, "CREATE TABLE \"a\" (\"id\" serial PRIMARY KEY);\nALTER TABLE \"a\" ADD COLUMN \"b\" text;", m.Up)
	require.Equal(t, `DROP TABLE IF EXISTS "a";`, m.Down)
}

func TestParseMigration_Malformed(t *testing.T) {
	cases := map[string]string{
		"no up":    "-- Down Migration (Rollback)\nDROP TABLE a;",
		"no down":  "-- Up Migration\nCREATE TABLE a ();",
		"swapped":  "-- Down Migration (Rollback)\nDROP TABLE a;\n-- Up Migration\nCREATE TABLE a ();",
		"empty up": "-- Up Migration\n-- ====\n-- Down Migration (Rollback)\nDROP TABLE a;",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMigration(name, content)
			require.Error(t, err)
		})
	}
}

func TestTablesAffected(t *testing.T) {
	sql := `CREATE TABLE "years" (id serial);
CREATE TABLE IF NOT EXISTS calendar (id serial);
ALTER TABLE "years" ADD COLUMN x int;
CREATE UNIQUE INDEX "ux_authors_name" ON "authors" ("name");`
	require.Equal(t, "years,calendar,authors", tablesAffected(sql))
}

func TestMigrations_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.sql": {Data: []byte(sample)},
		"0001_a.sql": {Data: []byte(sample)},
		"README.md":  {Data: []byte("not a migration")},
	}
	r := &Runner{fsys: fsys}

	ms, err := r.Migrations()
	require.NoError(t, err)
	require.Len(t, ms, 2)
	require.Equal(t, "0001_a.sql", ms[0].Name)
	require.Equal(t, "0002_b.sql", ms[1].Name)
}

func TestEmbeddedMigrationsCoverDeclaredSchema(t *testing.T) {
	r := &Runner{fsys: migrations.FS}
	ms, err := r.Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	var up strings.Builder
	for _, m := range ms {
		require.NotEmpty(t, m.Down, "%s has no rollback", m.Name)
		up.WriteString(m.Up + "\n")
	}
	touched := map[string]bool{}
	for _, name := range strings.Split(tablesAffected(up.String()), ",") {
		touched[name] = true
	}

	for _, model := range schema.Tables() {
		require.True(t, touched[model.TableName], "no migration creates %s", model.TableName)
		for _, col := range model.Columns {
			require.Contains(t, up.String(), `"`+col.Name+`"`, "%s.%s missing from migrations", model.TableName, col.Name)
		}
		for _, idx := range model.Indexes {
			require.Contains(t, up.String(), `"`+idx.Name+`"`, "index %s missing from migrations", idx.Name)
		}
	}
}
