package netsim

import "context"

// fieldTypeNames decodes Firebird RDB$FIELD_TYPE codes to type names.
var fieldTypeNames = map[int64]string{
	7:   "SMALLINT",
	8:   "INTEGER",
	10:  "FLOAT",
	12:  "DATE",
	13:  "TIME",
	14:  "CHAR",
	16:  "BIGINT",
	27:  "DOUBLE",
	35:  "TIMESTAMP",
	37:  "VARCHAR",
	261: "BLOB",
}

func decodeFieldType(code int64) string {
	if name, ok := fieldTypeNames[code]; ok {
		return name
	}
	return "OTHER"
}

// GetTables lists user table names, excluding system relations and views.
func (c *Client) GetTables(ctx context.Context) ([]string, error) {
	rows, err := c.Query(ctx, buildTablesSQL(), 0)
	if err != nil {
		return []string{}, err
	}
	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, row.Str("TABLE_NAME"))
	}
	return tables, nil
}

// GetTableColumns describes the columns of one remote table. Field types
// come back decoded, never as raw numeric codes.
func (c *Client) GetTableColumns(ctx context.Context, tableName string) ([]TableColumn, error) {
	rows, err := c.Query(ctx, buildTableColumnsSQL(tableName), 0)
	if err != nil {
		return []TableColumn{}, err
	}
	columns := make([]TableColumn, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, TableColumn{
			Name:      row.Str("FIELD_NAME"),
			FieldType: decodeFieldType(row.Int("RDB$FIELD_TYPE")),
			Length:    int(row.Int("RDB$FIELD_LENGTH")),
			Nullable:  !row.Bool("RDB$NULL_FLAG"),
		})
	}
	return columns, nil
}
