// Package validator checks the declared planner schema before SQL is generated from it.
package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/schema"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// ValidationError represents a validation finding with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Index    string `json:"index,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}
}

func (r *ValidationResult) add(e ValidationError) {
	switch e.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, e)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, e)
	default:
		r.Info = append(r.Info, e)
	}
}

var (
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// parameterised types such as varchar(255) or numeric(12,2)
	typeParams = regexp.MustCompile(`^([a-z ]+)\(\s*\d+\s*(,\s*\d+\s*)?\)$`)
)

var reservedKeywords = []string{"user", "order", "group", "table", "index", "view", "schema", "select", "where"}

var validTypes = map[string]bool{
	"smallint": true, "integer": true, "bigint": true,
	"decimal": true, "numeric": true, "real": true, "double precision": true,
	"serial": true, "bigserial": true, "smallserial": true,
	"character varying": true, "varchar": true, "character": true, "char": true,
	"text": true, "bytea": true,
	"timestamp": true, "timestamp with time zone": true, "timestamptz": true,
	"date": true, "time": true, "interval": true,
	"boolean": true, "bool": true,
	"json": true, "jsonb": true, "uuid": true,
	"integer[]": true, "text[]": true,
}

var validActions = []string{"CASCADE", "SET NULL", "SET DEFAULT", "RESTRICT", "NO ACTION"}

// Validate checks models on their own.
func Validate(models []schema.Model) *ValidationResult {
	result := newResult()
	for _, m := range models {
		validateModel(m, result)
	}
	validateCrossTable(models, result)
	return result
}

// ValidateAgainst checks models and reports how they relate to the live tables.
func ValidateAgainst(models []schema.Model, existing []introspect.ExistingTable) *ValidationResult {
	result := Validate(models)

	live := map[string]bool{}
	for _, t := range existing {
		live[t.TableName] = true
	}
	declared := schema.ByName(models)
	for _, m := range models {
		if live[m.TableName] {
			result.add(ValidationError{
				Type:     "table_exists",
				Table:    m.TableName,
				Message:  fmt.Sprintf("Table '%s' already exists in database", m.TableName),
				Severity: SeverityInfo,
			})
		}
	}
	for _, t := range existing {
		if _, ok := declared[t.TableName]; !ok {
			result.add(ValidationError{
				Type:     "undeclared_table",
				Table:    t.TableName,
				Message:  fmt.Sprintf("Table '%s' exists in database but is not declared", t.TableName),
				Severity: SeverityInfo,
			})
		}
	}
	return result
}

func validateModel(model schema.Model, result *ValidationResult) {
	if err := checkIdentifier("table", model.TableName); err != nil {
		result.add(ValidationError{Type: "table_name", Table: model.TableName, Message: err.Error(), Severity: SeverityError})
	}
	for _, kw := range reservedKeywords {
		if strings.EqualFold(model.TableName, kw) {
			result.add(ValidationError{
				Type:     "table_name",
				Table:    model.TableName,
				Message:  fmt.Sprintf("table name '%s' is a reserved keyword", model.TableName),
				Severity: SeverityError,
			})
		}
	}
	validateColumns(model, result)
	validateIndexes(model, result)
}

func checkIdentifier(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s name cannot be empty", kind)
	case len(name) > 63:
		return fmt.Errorf("%s name '%s' is too long (max 63 characters)", kind, name)
	case !identifier.MatchString(name):
		return fmt.Errorf("%s name '%s' is not a valid identifier", kind, name)
	}
	return nil
}

func validateColumns(model schema.Model, result *ValidationResult) {
	if len(model.Columns) == 0 {
		result.add(ValidationError{
			Type:     "no_columns",
			Table:    model.TableName,
			Message:  fmt.Sprintf("Table '%s' must have at least one column", model.TableName),
			Severity: SeverityError,
		})
		return
	}

	seen := map[string]bool{}
	hasPrimaryKey := len(model.PrimaryKey) > 0
	for _, column := range model.Columns {
		at := func(typ, msg, severity string) {
			result.add(ValidationError{Type: typ, Table: model.TableName, Column: column.Name, Message: msg, Severity: severity})
		}

		if seen[column.Name] {
			at("duplicate_column", fmt.Sprintf("Duplicate column name '%s' in table '%s'", column.Name, model.TableName), SeverityError)
			continue
		}
		seen[column.Name] = true

		if err := checkIdentifier("column", column.Name); err != nil {
			at("column_name", err.Error(), SeverityError)
		}
		if err := validateDataType(column.Type); err != nil {
			at("data_type", err.Error(), SeverityError)
		}
		if column.Primary {
			hasPrimaryKey = true
		}
		if column.Default != nil {
			if err := validateDefaultValue(column.Type, *column.Default); err != nil {
				at("default_value", err.Error(), SeverityWarning)
			}
		}
		if column.ForeignKey != nil {
			if err := validateForeignKeyDefinition(column, model.TableName); err != nil {
				at("foreign_key", err.Error(), SeverityError)
			}
		}
	}

	for _, c := range model.PrimaryKey {
		if !seen[c] {
			result.add(ValidationError{
				Type:     "primary_key_column_not_found",
				Table:    model.TableName,
				Column:   c,
				Message:  fmt.Sprintf("Primary key of '%s' uses non-existent column '%s'", model.TableName, c),
				Severity: SeverityError,
			})
		}
	}
	if !hasPrimaryKey {
		result.add(ValidationError{
			Type:     "no_primary_key",
			Table:    model.TableName,
			Message:  fmt.Sprintf("Table '%s' has no primary key defined", model.TableName),
			Severity: SeverityWarning,
		})
	}
}

func validateDataType(dataType string) error {
	t := strings.ToLower(strings.TrimSpace(dataType))
	if m := typeParams.FindStringSubmatch(t); m != nil {
		t = strings.TrimSpace(m[1])
	}
	if !validTypes[t] {
		return fmt.Errorf("unsupported data type '%s'", dataType)
	}
	return nil
}

func validateDefaultValue(dataType, def string) error {
	t := strings.ToLower(dataType)
	isCall := strings.Contains(def, "(") || strings.EqualFold(def, "CURRENT_TIMESTAMP") || strings.EqualFold(def, "CURRENT_DATE")

	switch {
	case strings.Contains(t, "int") || strings.Contains(t, "serial"):
		if !isCall && strings.Contains(def, ".") {
			return fmt.Errorf("integer type cannot have decimal default value '%s'", def)
		}
	case strings.Contains(t, "char") || t == "text":
		if !isCall && !strings.HasPrefix(def, "'") {
			return fmt.Errorf("string type should have quoted default value '%s'", def)
		}
	case t == "boolean" || t == "bool":
		if !strings.EqualFold(def, "true") && !strings.EqualFold(def, "false") {
			return fmt.Errorf("boolean type should have true/false default value, got '%s'", def)
		}
	}
	return nil
}

func validateForeignKeyDefinition(column schema.Column, tableName string) error {
	fk := column.ForeignKey
	if fk.ReferencesTable == "" {
		return fmt.Errorf("foreign key references table cannot be empty")
	}
	if fk.ReferencesColumn == "" {
		return fmt.Errorf("foreign key references column cannot be empty")
	}
	if fk.ReferencesTable == tableName && fk.ReferencesColumn == column.Name {
		return fmt.Errorf("foreign key cannot reference itself")
	}
	if fk.OnDelete != "" && !slices.Contains(validActions, strings.ToUpper(fk.OnDelete)) {
		return fmt.Errorf("invalid onDelete action '%s', must be one of: %v", fk.OnDelete, validActions)
	}
	if fk.OnUpdate != "" && !slices.Contains(validActions, strings.ToUpper(fk.OnUpdate)) {
		return fmt.Errorf("invalid onUpdate action '%s', must be one of: %v", fk.OnUpdate, validActions)
	}
	return nil
}

func validateIndexes(model schema.Model, result *ValidationResult) {
	names := map[string]bool{}
	for _, index := range model.Indexes {
		if names[index.Name] {
			result.add(ValidationError{
				Type:     "duplicate_index",
				Table:    model.TableName,
				Index:    index.Name,
				Message:  fmt.Sprintf("Duplicate index name '%s' in table '%s'", index.Name, model.TableName),
				Severity: SeverityError,
			})
			continue
		}
		names[index.Name] = true

		if err := checkIdentifier("index", index.Name); err != nil {
			result.add(ValidationError{Type: "index_name", Table: model.TableName, Index: index.Name, Message: err.Error(), Severity: SeverityError})
		}
		for _, c := range index.Columns {
			if _, ok := model.Column(c); !ok {
				result.add(ValidationError{
					Type:     "index_column_not_found",
					Table:    model.TableName,
					Index:    index.Name,
					Column:   c,
					Message:  fmt.Sprintf("Index '%s' references non-existent column '%s' in table '%s'", index.Name, c, model.TableName),
					Severity: SeverityError,
				})
			}
		}
	}
}

// validateCrossTable checks that every foreign key points at a declared column.
func validateCrossTable(models []schema.Model, result *ValidationResult) {
	tables := schema.ByName(models)
	for _, model := range models {
		for _, column := range model.Columns {
			fk := column.ForeignKey
			if fk == nil {
				continue
			}
			target, ok := tables[fk.ReferencesTable]
			if !ok {
				result.add(ValidationError{
					Type:     "foreign_key_table_not_found",
					Table:    model.TableName,
					Column:   column.Name,
					Message:  fmt.Sprintf("Foreign key references non-existent table '%s'", fk.ReferencesTable),
					Severity: SeverityError,
				})
				continue
			}
			if _, ok := target.Column(fk.ReferencesColumn); !ok {
				result.add(ValidationError{
					Type:     "foreign_key_column_not_found",
					Table:    model.TableName,
					Column:   column.Name,
					Message:  fmt.Sprintf("Foreign key references non-existent column '%s' in table '%s'", fk.ReferencesColumn, fk.ReferencesTable),
					Severity: SeverityError,
				})
			}
		}
	}
}
