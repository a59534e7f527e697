package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/ridoystarlord/lifeplan/diff"
	"github.com/ridoystarlord/lifeplan/runner"
)

// GenerateSQL converts a list of Operations into raw SQL statements.
func GenerateSQL(ops []diff.Operation) ([]string, error) {
	var sqlStatements []string

	for _, op := range ops {
		switch op.Type {
		case diff.CreateTable:
			stmt, err := generateCreateTable(op)
			if err != nil {
				return nil, fmt.Errorf("generate CREATE TABLE: %w", err)
			}
			sqlStatements = append(sqlStatements, stmt)

		case diff.AddColumn:
			stmt := fmt.Sprintf(`ALTER TABLE "%s" ADD COLUMN "%s" %s`,
				op.TableName,
				op.Column.Name,
				op.Column.Type,
			)
			if op.Column.NotNull {
				stmt += " NOT NULL"
			}
			if op.Column.Default != nil {
				stmt += fmt.Sprintf(" DEFAULT %s", *op.Column.Default)
			}
			if op.Column.Unique {
				stmt += " UNIQUE"
			}
			sqlStatements = append(sqlStatements, stmt+";")

		case diff.DropColumn:
			stmt := fmt.Sprintf(`ALTER TABLE "%s" DROP COLUMN "%s";`,
				op.TableName,
				op.ColumnName,
			)
			sqlStatements = append(sqlStatements, stmt)

		case diff.DropTable:
			stmt := fmt.Sprintf(`DROP TABLE IF EXISTS "%s";`,
				op.TableName,
			)
			sqlStatements = append(sqlStatements, stmt)

		case diff.AddForeignKey:
			stmt := fmt.Sprintf(`ALTER TABLE "%s" ADD CONSTRAINT "%s" FOREIGN KEY ("%s") REFERENCES "%s" ("%s")`,
				op.TableName,
				foreignKeyName(op.TableName, op.ColumnName),
				op.ColumnName,
				op.ForeignKey.ReferencesTable,
				op.ForeignKey.ReferencesColumn,
			)
			if op.ForeignKey.OnDelete != "" {
				stmt += fmt.Sprintf(" ON DELETE %s", op.ForeignKey.OnDelete)
			}
			if op.ForeignKey.OnUpdate != "" {
				stmt += fmt.Sprintf(" ON UPDATE %s", op.ForeignKey.OnUpdate)
			}
			sqlStatements = append(sqlStatements, stmt+";")

		case diff.DropForeignKey:
			stmt := fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT "%s";`,
				op.TableName,
				op.FKName,
			)
			sqlStatements = append(sqlStatements, stmt)

		case diff.CreateIndex:
			stmt, err := generateCreateIndex(op)
			if err != nil {
				return nil, fmt.Errorf("generate CREATE INDEX: %w", err)
			}
			sqlStatements = append(sqlStatements, stmt)

		case diff.DropIndex:
			stmt := fmt.Sprintf(`DROP INDEX IF EXISTS "%s";`,
				op.IndexName,
			)
			sqlStatements = append(sqlStatements, stmt)

		default:
			return nil, fmt.Errorf("unsupported operation: %s", op.Type)
		}
	}

	return sqlStatements, nil
}

// GenerateRollbackSQL converts a list of Operations into rollback SQL statements.
// Destructive operations cannot be reversed from the diff alone; they are
// recorded as comments so the down section documents what was lost.
func GenerateRollbackSQL(ops []diff.Operation) ([]string, error) {
	var sqlStatements []string

	// Process operations in reverse order for rollback
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Type {
		case diff.CreateTable:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`DROP TABLE IF EXISTS "%s";`, op.TableName))

		case diff.AddColumn:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`ALTER TABLE "%s" DROP COLUMN "%s";`,
				op.TableName,
				op.Column.Name,
			))

		case diff.AddForeignKey:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`ALTER TABLE "%s" DROP CONSTRAINT "%s";`,
				op.TableName,
				foreignKeyName(op.TableName, op.ColumnName),
			))

		case diff.CreateIndex:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`DROP INDEX IF EXISTS "%s";`, op.Index.Name))

		case diff.DropColumn:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`-- cannot restore dropped column "%s"."%s"`, op.TableName, op.ColumnName))

		case diff.DropTable:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`-- cannot restore dropped table "%s"`, op.TableName))

		case diff.DropForeignKey:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`-- cannot restore dropped constraint "%s" on "%s"`, op.FKName, op.TableName))

		case diff.DropIndex:
			sqlStatements = append(sqlStatements, fmt.Sprintf(`-- cannot restore dropped index "%s"`, op.IndexName))

		default:
			return nil, fmt.Errorf("unsupported rollback operation: %s", op.Type)
		}
	}

	return sqlStatements, nil
}

func foreignKeyName(table, column string) string {
	return fmt.Sprintf("fk_%s_%s", table, column)
}

func generateCreateTable(op diff.Operation) (string, error) {
	if len(op.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", op.TableName)
	}

	var defs []string
	for _, col := range op.Columns {
		def := fmt.Sprintf(`"%s" %s`, col.Name, col.Type)
		if col.Primary {
			def += " PRIMARY KEY"
		}
		if col.Unique {
			def += " UNIQUE"
		}
		if col.NotNull {
			def += " NOT NULL"
		}
		if col.Default != nil {
			def += fmt.Sprintf(" DEFAULT %s", *col.Default)
		}
		if fk := col.ForeignKey; fk != nil {
			def += fmt.Sprintf(` REFERENCES "%s" ("%s")`, fk.ReferencesTable, fk.ReferencesColumn)
			if fk.OnDelete != "" {
				def += " ON DELETE " + fk.OnDelete
			}
			if fk.OnUpdate != "" {
				def += " ON UPDATE " + fk.OnUpdate
			}
		}
		defs = append(defs, def)
	}
	if len(op.PrimaryKey) > 0 {
		defs = append(defs, "PRIMARY KEY ("+quoteList(op.PrimaryKey)+")")
	}

	return fmt.Sprintf("CREATE TABLE \"%s\" (\n  %s\n);", op.TableName, strings.Join(defs, ",\n  ")), nil
}

func generateCreateIndex(op diff.Operation) (string, error) {
	if op.Index == nil {
		return "", fmt.Errorf("index is nil")
	}
	if len(op.Index.Columns) == 0 {
		return "", fmt.Errorf("index %s has no columns", op.Index.Name)
	}

	stmt := "CREATE"
	if op.Index.Unique {
		stmt += " UNIQUE"
	}
	stmt += " INDEX"
	if op.Index.Name != "" {
		stmt += fmt.Sprintf(` "%s"`, op.Index.Name)
	}

	table := op.Index.Table
	if table == "" {
		table = op.TableName
	}
	stmt += fmt.Sprintf(` ON "%s"`, table)

	if op.Index.Type != "" && op.Index.Type != "btree" {
		stmt += fmt.Sprintf(" USING %s", op.Index.Type)
	}

	return stmt + " (" + quoteList(op.Index.Columns) + ");", nil
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return strings.Join(quoted, ", ")
}

// MigrationContent renders up/down statements in the migration file layout.
func MigrationContent(name, description string, sqlStatements, rollbackStatements []string) string {
	var b strings.Builder
	b.WriteString("-- Migration: " + name + "\n")
	b.WriteString("-- Description: " + description + "\n\n")

	b.WriteString(runner.UpMarker + "\n")
	b.WriteString("-- ============\n")
	for _, stmt := range sqlStatements {
		b.WriteString(stmt + "\n")
	}

	b.WriteString("\n" + runner.DownMarker + "\n")
	b.WriteString("-- =======================\n")
	for _, stmt := range rollbackStatements {
		b.WriteString(stmt + "\n")
	}
	return b.String()
}

// WriteMigrationFile saves the SQL statements into a timestamped .sql file with up/down sections
func WriteMigrationFile(dir string, now time.Time, sqlStatements []string, rollbackStatements []string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating migrations folder: %w", err)
	}

	timestamp := now.Format("20060102150405")
	filename := filepath.Join(dir, timestamp+"_migration.sql")
	content := MigrationContent(timestamp, "Auto-generated migration", sqlStatements, rollbackStatements)

	if err := atomic.WriteFile(filename, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("writing migration file: %w", err)
	}

	return filename, nil
}
