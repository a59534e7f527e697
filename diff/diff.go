package diff

import (
	"strings"

	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/schema"
)

type OperationType string

const (
	CreateTable    OperationType = "CREATE_TABLE"
	AddColumn      OperationType = "ADD_COLUMN"
	DropColumn     OperationType = "DROP_COLUMN"
	DropTable      OperationType = "DROP_TABLE"
	AddForeignKey  OperationType = "ADD_FOREIGN_KEY"
	DropForeignKey OperationType = "DROP_FOREIGN_KEY"
	CreateIndex    OperationType = "CREATE_INDEX"
	DropIndex      OperationType = "DROP_INDEX"
)

type Operation struct {
	Type       OperationType
	TableName  string
	Columns    []schema.Column    // for CREATE_TABLE
	PrimaryKey []string           // for CREATE_TABLE with a composite key
	Column     *schema.Column     // for ADD_COLUMN
	ColumnName string             // for DROP_COLUMN, ADD_FOREIGN_KEY
	ForeignKey *schema.ForeignKey // for ADD_FOREIGN_KEY
	FKName     string             // for DROP_FOREIGN_KEY
	Index      *schema.Index      // for CREATE_INDEX
	IndexName  string             // for DROP_INDEX
}

// DiffSchemas returns the operations that turn the existing database into
// the declared models. Tables named in ignore are neither created nor dropped.
func DiffSchemas(models []schema.Model, existing []introspect.ExistingTable, ignore ...string) []Operation {
	var ops []Operation

	skip := map[string]bool{}
	for _, name := range ignore {
		skip[name] = true
	}

	existingTableMap := map[string]introspect.ExistingTable{}
	for _, t := range existing {
		existingTableMap[t.TableName] = t
	}
	modelTableMap := schema.ByName(models)

	for _, model := range models {
		if skip[model.TableName] {
			continue
		}
		table, exists := existingTableMap[model.TableName]
		if !exists {
			ops = append(ops, Operation{
				Type:       CreateTable,
				TableName:  model.TableName,
				Columns:    model.Columns,
				PrimaryKey: model.PrimaryKey,
			})
			for _, idx := range model.Indexes {
				idx := idx
				ops = append(ops, Operation{Type: CreateIndex, TableName: model.TableName, Index: &idx})
			}
			continue
		}
		ops = append(ops, diffTable(model, table)...)
	}

	// Check for tables to drop (in existing but not in model)
	for _, table := range existing {
		if skip[table.TableName] {
			continue
		}
		if _, exists := modelTableMap[table.TableName]; !exists {
			ops = append(ops, Operation{
				Type:      DropTable,
				TableName: table.TableName,
			})
		}
	}

	return ops
}

func diffTable(model schema.Model, table introspect.ExistingTable) []Operation {
	var ops []Operation

	existingCols := map[string]introspect.ExistingColumn{}
	for _, c := range table.Columns {
		existingCols[c.ColumnName] = c
	}

	for _, col := range model.Columns {
		if _, exists := existingCols[col.Name]; !exists {
			col := col
			ops = append(ops, Operation{
				Type:      AddColumn,
				TableName: model.TableName,
				Column:    &col,
			})
		}
	}

	for _, col := range table.Columns {
		if _, exists := model.Column(col.ColumnName); !exists {
			ops = append(ops, Operation{
				Type:       DropColumn,
				TableName:  model.TableName,
				ColumnName: col.ColumnName,
			})
		}
	}

	existingFKs := map[string]introspect.ExistingForeignKey{}
	for _, fk := range table.ForeignKeys {
		existingFKs[fk.ColumnName] = fk
	}

	for _, col := range model.Columns {
		if col.ForeignKey == nil {
			continue
		}
		existingFK, exists := existingFKs[col.Name]
		if exists && sameForeignKey(existingFK, *col.ForeignKey) {
			continue
		}
		if exists {
			// Definition changed: drop and re-add.
			ops = append(ops, Operation{
				Type:      DropForeignKey,
				TableName: model.TableName,
				FKName:    existingFK.ConstraintName,
			})
		}
		ops = append(ops, Operation{
			Type:       AddForeignKey,
			TableName:  model.TableName,
			ColumnName: col.Name,
			ForeignKey: col.ForeignKey,
		})
	}

	for _, fk := range table.ForeignKeys {
		col, exists := model.Column(fk.ColumnName)
		if !exists || col.ForeignKey == nil {
			ops = append(ops, Operation{
				Type:      DropForeignKey,
				TableName: model.TableName,
				FKName:    fk.ConstraintName,
			})
		}
	}

	existingIndexes := map[string]bool{}
	for _, idx := range table.Indexes {
		existingIndexes[idx.IndexName] = true
	}
	modelIndexes := map[string]bool{}
	for _, idx := range model.Indexes {
		modelIndexes[idx.Name] = true
		if !existingIndexes[idx.Name] {
			idx := idx
			ops = append(ops, Operation{
				Type:      CreateIndex,
				TableName: model.TableName,
				Index:     &idx,
			})
		}
	}
	for _, idx := range table.Indexes {
		if !modelIndexes[idx.IndexName] {
			ops = append(ops, Operation{
				Type:      DropIndex,
				TableName: model.TableName,
				IndexName: idx.IndexName,
			})
		}
	}

	return ops
}

func sameForeignKey(existing introspect.ExistingForeignKey, want schema.ForeignKey) bool {
	return existing.ReferencesTable == want.ReferencesTable &&
		existing.ReferencesColumn == want.ReferencesColumn &&
		referentialAction(existing.OnDelete) == referentialAction(want.OnDelete) &&
		referentialAction(existing.OnUpdate) == referentialAction(want.OnUpdate)
}

// referentialAction normalizes an ON DELETE/ON UPDATE rule; PostgreSQL reports
// an omitted rule as NO ACTION.
func referentialAction(rule string) string {
	if rule == "" {
		return "NO ACTION"
	}
	return strings.ToUpper(rule)
}
