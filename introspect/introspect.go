package introspect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type ExistingTable struct {
	TableName   string
	Columns     []ExistingColumn
	ForeignKeys []ExistingForeignKey
	Indexes     []ExistingIndex
}

type ExistingColumn struct {
	ColumnName    string
	DataType      string
	IsNullable    bool
	ColumnDefault *string
	IsPrimaryKey  bool
	IsUnique      bool
}

type ExistingForeignKey struct {
	ConstraintName   string
	ColumnName       string
	ReferencesTable  string
	ReferencesColumn string
	OnDelete         string
	OnUpdate         string
}

type ExistingIndex struct {
	IndexName string
	TableName string
	Columns   []string
	IsUnique  bool
	IndexType string
}

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// IntrospectDatabase reads every base table of the public schema.
func IntrospectDatabase(ctx context.Context, db Querier) ([]ExistingTable, error) {
	tablesQuery := `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_type='BASE TABLE'
	ORDER BY table_name;
	`

	rows, err := db.Query(ctx, tablesQuery)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	tableNames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning table names: %w", err)
	}

	var tables []ExistingTable
	for _, tableName := range tableNames {
		columns, err := getColumns(ctx, db, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting columns for table %s: %w", tableName, err)
		}

		foreignKeys, err := getForeignKeys(ctx, db, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting foreign keys for table %s: %w", tableName, err)
		}

		indexes, err := getIndexes(ctx, db, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting indexes for table %s: %w", tableName, err)
		}

		tables = append(tables, ExistingTable{
			TableName:   tableName,
			Columns:     columns,
			ForeignKeys: foreignKeys,
			Indexes:     indexes,
		})
	}

	return tables, nil
}

func getColumns(ctx context.Context, db Querier, tableName string) ([]ExistingColumn, error) {
	columnsQuery := `
	SELECT
		c.column_name,
		c.data_type,
		(c.is_nullable = 'YES') as is_nullable,
		c.column_default,
		COALESCE(bool_or(tc.constraint_type = 'PRIMARY KEY'), false) as is_primary,
		COALESCE(bool_or(tc.constraint_type = 'UNIQUE'), false) as is_unique
	FROM information_schema.columns c
	LEFT JOIN information_schema.key_column_usage kcu
		ON c.table_schema = kcu.table_schema AND c.table_name = kcu.table_name AND c.column_name = kcu.column_name
	LEFT JOIN information_schema.table_constraints tc
		ON kcu.constraint_name = tc.constraint_name AND kcu.table_name = tc.table_name
	WHERE c.table_schema = 'public' AND c.table_name = $1
	GROUP BY c.column_name, c.data_type, c.is_nullable, c.column_default, c.ordinal_position
	ORDER BY c.ordinal_position;
	`

	rows, err := db.Query(ctx, columnsQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []ExistingColumn
	for rows.Next() {
		var col ExistingColumn
		var nullable bool
		if err := rows.Scan(
			&col.ColumnName,
			&col.DataType,
			&nullable,
			&col.ColumnDefault,
			&col.IsPrimaryKey,
			&col.IsUnique,
		); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		col.IsNullable = nullable
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}

	return columns, nil
}

func getForeignKeys(ctx context.Context, db Querier, tableName string) ([]ExistingForeignKey, error) {
	foreignKeysQuery := `
	SELECT
		tc.constraint_name,
		kcu.column_name,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name,
		rc.delete_rule,
		rc.update_rule
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	LEFT JOIN information_schema.referential_constraints AS rc
		ON tc.constraint_name = rc.constraint_name
	WHERE tc.constraint_type = 'FOREIGN KEY' 
		AND tc.table_schema = 'public'
		AND tc.table_name = $1;
	`

	rows, err := db.Query(ctx, foreignKeysQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}
	defer rows.Close()

	var foreignKeys []ExistingForeignKey
	for rows.Next() {
		var fk ExistingForeignKey
		if err := rows.Scan(
			&fk.ConstraintName,
			&fk.ColumnName,
			&fk.ReferencesTable,
			&fk.ReferencesColumn,
			&fk.OnDelete,
			&fk.OnUpdate,
		); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}
		foreignKeys = append(foreignKeys, fk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foreign key rows: %w", err)
	}

	return foreignKeys, nil
}

func getIndexes(ctx context.Context, db Querier, tableName string) ([]ExistingIndex, error) {
	// Indexes backing a constraint (primary keys, UNIQUE columns) are owned by
	// the table definition and are left out.
	indexesQuery := `
	SELECT
		ic.relname,
		t.relname,
		array_agg(a.attname::text ORDER BY k.ord),
		ix.indisunique,
		am.amname
	FROM pg_index ix
	JOIN pg_class ic ON ic.oid = ix.indexrelid
	JOIN pg_class t ON t.oid = ix.indrelid
	JOIN pg_namespace n ON n.oid = t.relnamespace
	JOIN pg_am am ON am.oid = ic.relam
	CROSS JOIN LATERAL unnest(ix.indkey::int2[]) WITH ORDINALITY AS k(attnum, ord)
	JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
	WHERE n.nspname = 'public' AND t.relname = $1
		AND NOT EXISTS (SELECT 1 FROM pg_constraint con WHERE con.conindid = ix.indexrelid)
	GROUP BY ic.relname, t.relname, ix.indisunique, am.amname
	ORDER BY ic.relname;
	`

	rows, err := db.Query(ctx, indexesQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying indexes: %w", err)
	}
	defer rows.Close()

	var indexes []ExistingIndex
	for rows.Next() {
		var idx ExistingIndex
		if err := rows.Scan(
			&idx.IndexName,
			&idx.TableName,
			&idx.Columns,
			&idx.IsUnique,
			&idx.IndexType,
		); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		indexes = append(indexes, idx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index rows: %w", err)
	}

	return indexes, nil
}
