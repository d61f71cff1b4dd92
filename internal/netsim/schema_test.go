package netsim

import (
	"context"
	"strings"
	"testing"
)

func TestDecodeFieldType(t *testing.T) {
	cases := map[int64]string{
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
		99:  "OTHER",
		0:   "OTHER",
	}
	for code, want := range cases {
		if got := decodeFieldType(code); got != want {
			t.Errorf("decodeFieldType(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestGetTableColumnsDecodesTypes(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM RDB$RELATION_FIELDS": {
			{"FIELD_NAME": "RECETE_NO", "RDB$FIELD_TYPE": float64(8), "RDB$FIELD_LENGTH": float64(4), "RDB$NULL_FLAG": float64(1)},
			{"FIELD_NAME": "RECETE_ADI", "RDB$FIELD_TYPE": float64(37), "RDB$FIELD_LENGTH": float64(100), "RDB$NULL_FLAG": nil},
			{"FIELD_NAME": "RESIM", "RDB$FIELD_TYPE": float64(261), "RDB$FIELD_LENGTH": float64(8), "RDB$NULL_FLAG": nil},
		},
	})

	columns, err := sb.client().GetTableColumns(context.Background(), "uretrece")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}

	if !strings.Contains(sb.lastQuery(), "'URETRECE'") {
		t.Fatalf("table name must be uppercased into the query:\n%s", sb.lastQuery())
	}

	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	if columns[0].FieldType != "INTEGER" || columns[0].Nullable {
		t.Fatalf("NOT NULL integer decoded wrong: %+v", columns[0])
	}
	if columns[1].FieldType != "VARCHAR" || !columns[1].Nullable || columns[1].Length != 100 {
		t.Fatalf("varchar decoded wrong: %+v", columns[1])
	}
	if columns[2].FieldType != "BLOB" {
		t.Fatalf("blob decoded wrong: %+v", columns[2])
	}
	// Never a raw numeric code.
	for _, col := range columns {
		switch col.FieldType {
		case "SMALLINT", "INTEGER", "FLOAT", "DATE", "TIME", "CHAR", "BIGINT", "DOUBLE", "TIMESTAMP", "VARCHAR", "BLOB", "OTHER":
		default:
			t.Fatalf("undecoded field type %q", col.FieldType)
		}
	}
}

func TestGetTablesExcludesSystemRelations(t *testing.T) {
	sb := newStubBridge(t)
	sb.onQueryRows(map[string][]map[string]any{
		"FROM RDB$RELATIONS": {
			{"TABLE_NAME": "ALSAASIL"},
			{"TABLE_NAME": "STOKKART"},
			{"TABLE_NAME": "URETRECE"},
		},
	})

	tables, err := sb.client().GetTables(context.Background())
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	if len(tables) != 3 || tables[0] != "ALSAASIL" {
		t.Fatalf("unexpected tables: %v", tables)
	}

	sql := sb.lastQuery()
	if !strings.Contains(sql, "RDB$SYSTEM_FLAG") || !strings.Contains(sql, "RDB$VIEW_BLR IS NULL") {
		t.Fatalf("system/view exclusion missing:\n%s", sql)
	}
}
