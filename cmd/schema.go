package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ridoystarlord/lifeplan/diff"
	"github.com/ridoystarlord/lifeplan/generator"
	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/runner"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/ridoystarlord/lifeplan/validator"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the declared planner schema with the database",
}

var (
	generateOut    string
	dryRunGenerate bool
	diffVisual     bool
	validateFormat string
	validateOnline bool
)

// schemaOperations diffs the declared tables against the live database.
func schemaOperations(ctx context.Context) ([]diff.Operation, []introspect.ExistingTable, error) {
	pool, err := openPool()
	if err != nil {
		return nil, nil, err
	}
	existing, err := introspect.IntrospectDatabase(ctx, pool)
	if err != nil {
		return nil, nil, err
	}
	ops := diff.DiffSchemas(schema.Tables(), existing, runner.MigrationsTable, runner.LogsTable)
	return ops, existing, nil
}

var schemaGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a migration file that brings the database to the declared schema",
	Long: `Generate a migration file from the difference between the declared
planner tables and the connected database.

Examples:
  lifeplan schema generate                # Write migrations/<timestamp>_migration.sql
  lifeplan schema generate --out ./sql    # Write into another directory
  lifeplan schema generate --dry-run      # Print the SQL only
`,
	Run: func(cmd *cobra.Command, args []string) {
		ops, _, err := schemaOperations(cmd.Context())
		if err != nil {
			fmt.Println("❌ Introspecting database:", err)
			os.Exit(1)
		}
		if len(ops) == 0 {
			fmt.Println("✅ No changes detected.")
			return
		}

		sqls, err := generator.GenerateSQL(ops)
		if err != nil {
			fmt.Println("❌ Generating SQL:", err)
			os.Exit(1)
		}
		rollbackSqls, err := generator.GenerateRollbackSQL(ops)
		if err != nil {
			fmt.Println("❌ Generating rollback SQL:", err)
			os.Exit(1)
		}

		if dryRunGenerate {
			fmt.Println("\n================ DRY RUN: Migration Preview ================")
			fmt.Println(runner.UpMarker)
			for _, stmt := range sqls {
				fmt.Println(stmt)
			}
			fmt.Println("\n" + runner.DownMarker)
			for _, stmt := range rollbackSqls {
				fmt.Println(stmt)
			}
			fmt.Println("============================================================")
			fmt.Println("(Dry run only. No files were written.)")
			return
		}

		filename, err := generator.WriteMigrationFile(generateOut, time.Now(), sqls, rollbackSqls)
		if err != nil {
			fmt.Println("❌ Writing migration file:", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration generated:", filename)
	},
}

var schemaDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show differences between the declared schema and the database",
	Long: `Show differences between the declared planner tables and the database.

Examples:
  lifeplan schema diff           # Show differences in text format
  lifeplan schema diff --visual  # Group changes per table with colours
`,
	Run: func(cmd *cobra.Command, args []string) {
		ops, _, err := schemaOperations(cmd.Context())
		if err != nil {
			fmt.Printf("❌ Error introspecting database: %v\n", err)
			os.Exit(1)
		}
		if len(ops) == 0 {
			fmt.Println("✅ No differences found between schema and database")
			return
		}
		if diffVisual {
			showVisualDiff(ops)
		} else {
			showTextDiff(ops)
		}
	},
}

func describeOperation(op diff.Operation) string {
	switch op.Type {
	case diff.CreateTable:
		return fmt.Sprintf("CREATE TABLE %s", op.TableName)
	case diff.DropTable:
		return fmt.Sprintf("DROP TABLE %s", op.TableName)
	case diff.AddColumn:
		s := fmt.Sprintf("ADD COLUMN %s.%s (%s)", op.TableName, op.Column.Name, op.Column.Type)
		if op.Column.NotNull {
			s += " NOT NULL"
		}
		if op.Column.Default != nil {
			s += " DEFAULT " + *op.Column.Default
		}
		return s
	case diff.DropColumn:
		return fmt.Sprintf("DROP COLUMN %s.%s", op.TableName, op.ColumnName)
	case diff.CreateIndex:
		return fmt.Sprintf("CREATE INDEX %s ON %s", op.Index.Name, op.TableName)
	case diff.DropIndex:
		return fmt.Sprintf("DROP INDEX %s", op.IndexName)
	case diff.AddForeignKey:
		return fmt.Sprintf("ADD FOREIGN KEY %s.%s → %s.%s", op.TableName, op.ColumnName, op.ForeignKey.ReferencesTable, op.ForeignKey.ReferencesColumn)
	case diff.DropForeignKey:
		return fmt.Sprintf("DROP FOREIGN KEY %s", op.FKName)
	}
	return string(op.Type) + " " + op.TableName
}

func showTextDiff(ops []diff.Operation) {
	fmt.Println("📋 Schema Changes (Text Format)")
	fmt.Println(strings.Repeat("=", 40))
	for i, op := range ops {
		fmt.Printf("%d. %s\n", i+1, describeOperation(op))
	}
}

func showVisualDiff(ops []diff.Operation) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Println("🌳 Schema Changes (Visual Diff)")
	fmt.Println(strings.Repeat("=", 50))

	byTable := map[string][]diff.Operation{}
	for _, op := range ops {
		byTable[op.TableName] = append(byTable[op.TableName], op)
	}
	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, t := range tables {
		tops := byTable[t]
		switch tops[0].Type {
		case diff.CreateTable:
			green.Printf("\n  ➕ CREATE %s\n", t)
		case diff.DropTable:
			red.Printf("\n  ❌ DROP %s\n", t)
		default:
			yellow.Printf("\n  ⚡ MODIFY %s\n", t)
		}
		for _, op := range tops {
			switch op.Type {
			case diff.CreateTable, diff.DropTable:
				continue
			case diff.AddColumn, diff.AddForeignKey, diff.CreateIndex:
				green.Printf("    ➕ %s\n", describeOperation(op))
			default:
				red.Printf("    ❌ %s\n", describeOperation(op))
			}
		}
	}
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the declared planner schema",
	Long: `Validate the declared planner tables: identifier rules, reserved
keywords, supported types, foreign key targets and index columns.

Examples:
  lifeplan schema validate                # Offline validation
  lifeplan schema validate --db           # Also compare with the database
  lifeplan schema validate --format json  # Output validation results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		models := schema.Tables()
		result := validator.Validate(models)
		if validateOnline {
			pool, err := openPool()
			if err != nil {
				fmt.Printf("❌ Database connection failed: %v\n", err)
				os.Exit(1)
			}
			existing, err := introspect.IntrospectDatabase(cmd.Context(), pool)
			if err != nil {
				fmt.Printf("❌ Error introspecting database: %v\n", err)
				os.Exit(1)
			}
			result = validator.ValidateAgainst(models, existing)
		}

		if validateFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				fmt.Println("❌", err)
				os.Exit(1)
			}
		} else {
			outputText(result)
		}
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func printFindings(title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Printf("  %d. ", i+1)
		if f.Table != "" {
			fmt.Printf("[%s]", f.Table)
		}
		if f.Column != "" {
			fmt.Printf(".%s", f.Column)
		}
		if f.Index != "" {
			fmt.Printf(" (index: %s)", f.Index)
		}
		fmt.Printf(": %s\n", f.Message)
	}
}

func outputText(result *validator.ValidationResult) {
	if result.Valid {
		color.Green("✅ Schema validation passed!")
	} else {
		color.Red("❌ Schema validation failed!")
	}
	printFindings("🔴 Errors", result.Errors)
	printFindings("🟡 Warnings", result.Warnings)
	printFindings("🔵 Info", result.Info)

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))
}

func init() {
	schemaGenerateCmd.Flags().StringVarP(&generateOut, "out", "o", "migrations", "Directory to write the migration file into")
	schemaGenerateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Preview the SQL that would be generated without writing files")
	schemaDiffCmd.Flags().BoolVar(&diffVisual, "visual", false, "Show changes grouped per table")
	schemaValidateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
	schemaValidateCmd.Flags().BoolVar(&validateOnline, "db", false, "Compare with the connected database")

	schemaCmd.AddCommand(schemaGenerateCmd, schemaDiffCmd, schemaValidateCmd)
}
