package validator

import (
	"testing"

	"github.com/ridoystarlord/lifeplan/introspect"
	"github.com/ridoystarlord/lifeplan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DeclaredSchemaIsValid(t *testing.T) {
	result := Validate(schema.Tables())
	require.True(t, result.Valid, "errors: %+v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func errorTypes(r *ValidationResult) []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Type)
	}
	return out
}

func TestValidate_Findings(t *testing.T) {
	bad := "1.5"
	models := []schema.Model{
		{
			TableName: "order",
			Columns:   []schema.Column{{Name: "id", Type: "serial", Primary: true}},
		},
		{
			TableName: "notes",
			Columns: []schema.Column{
				{Name: "id", Type: "serial", Primary: true},
				{Name: "id", Type: "integer"},
				{Name: "body", Type: "blob"},
				{Name: "count", Type: "integer", Default: &bad},
				{Name: "owner_id", Type: "integer", ForeignKey: &schema.ForeignKey{ReferencesTable: "owners", ReferencesColumn: "id"}},
				{Name: "order_id", Type: "integer", ForeignKey: &schema.ForeignKey{ReferencesTable: "order", ReferencesColumn: "uuid", OnDelete: "EXPLODE"}},
			},
			Indexes: []schema.Index{{Name: "ix-notes", Table: "notes", Columns: []string{"missing"}}},
		},
		{TableName: "empty"},
	}

	result := Validate(models)
	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{
		"table_name",
		"duplicate_column",
		"data_type",
		"foreign_key",
		"index_name",
		"index_column_not_found",
		"no_columns",
		"foreign_key_table_not_found",
		"foreign_key_column_not_found",
	}, errorTypes(result))
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "default_value", result.Warnings[0].Type)
}

func TestValidate_ParameterisedTypes(t *testing.T) {
	for _, typ := range []string{"varchar(255)", "numeric(12,2)", "NUMERIC(12, 2)", "timestamp"} {
		assert.NoError(t, validateDataType(typ), typ)
	}
	assert.Error(t, validateDataType("varchar(abc)"))
}

func TestValidateAgainst(t *testing.T) {
	models := []schema.Model{{TableName: "years", Columns: []schema.Column{{Name: "id", Type: "serial", Primary: true}}}}
	existing := []introspect.ExistingTable{{TableName: "years"}, {TableName: "legacy"}}

	result := ValidateAgainst(models, existing)
	require.True(t, result.Valid)
	require.Len(t, result.Info, 2)
	assert.Equal(t, "table_exists", result.Info[0].Type)
	assert.Equal(t, "legacy", result.Info[1].Table)
}
