package netsim

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Remote entities are projections of the NetSim Firebird schema. They are
// rebuilt from query rows on every call and never cached locally.

// RemoteOrder is a purchase order header from ALSAASIL.
type RemoteOrder struct {
	OrderNo       int64      `json:"order_no"`
	TrackingNo    string     `json:"tracking_no"`
	OperationCode string     `json:"operation_code"`
	OrderDate     *time.Time `json:"order_date"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	Approved      bool       `json:"approved"`
	Closed        bool       `json:"closed"`
	CustomerNo    int64      `json:"customer_no"`
	CustomerName  string     `json:"customer_name"`
	TotalAmount   float64    `json:"total_amount"`
	Currency      string     `json:"currency"`
}

// RemoteOrderLine is one ALSADETAY row with product names resolved.
type RemoteOrderLine struct {
	LineID            int64      `json:"line_id"`
	OrderNo           int64      `json:"order_no"`
	Seq               int        `json:"seq"`
	StockNo           int64      `json:"stock_no"`
	StockCode         string     `json:"stock_code"`
	StockName         string     `json:"stock_name"`
	ProducedStockNo   int64      `json:"produced_stock_no"`
	ProducedStockName string     `json:"produced_stock_name"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit"`
	UnitPrice         float64    `json:"unit_price"`
	Amount            float64    `json:"amount"`
	Note1             string     `json:"note1"`
	Note2             string     `json:"note2"`
	Note3             string     `json:"note3"`
	Note4             string     `json:"note4"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	RecipeName        string     `json:"recipe_name"`
}

// RemoteCustomer is a CARIKART row.
type RemoteCustomer struct {
	CustomerNo int64  `json:"customer_no"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	TaxOffice  string `json:"tax_office"`
	TaxNo      string `json:"tax_no"`
}

// RemoteProduct is a STOKKART row.
type RemoteProduct struct {
	StockNo  int64  `json:"stock_no"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	TypeName string `json:"type_name"`
}

// RemoteRecipe is a URETRECE bill-of-materials header.
type RemoteRecipe struct {
	RecipeNo  int64  `json:"recipe_no"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	StockNo   int64  `json:"stock_no"`
	StockName string `json:"stock_name"`
}

// RemoteRecipeRevision is a URETREV versioned variant of a recipe.
type RemoteRecipeRevision struct {
	RevisionNo  int64      `json:"revision_no"`
	RecipeNo    int64      `json:"recipe_no"`
	Code        string     `json:"code"`
	Active      bool       `json:"active"`
	Default     bool       `json:"default"`
	Coefficient float64    `json:"coefficient"`
	Quantity    float64    `json:"quantity"`
	Date        *time.Time `json:"date"`
}

// Direction values on a recipe line. The sign is passed through from the
// wire unvalidated; anything other than +1/-1 is informational.
const (
	DirectionInput  = 1
	DirectionOutput = -1
)

// RemoteRecipeLine is one URETDET input/output step of a revision.
type RemoteRecipeLine struct {
	DetailNo          int64   `json:"detail_no"`
	RevisionNo        int64   `json:"revision_no"`
	OperationName     string  `json:"operation_name"`
	Direction         int     `json:"direction"`
	Seq               int     `json:"seq"`
	StockNo           int64   `json:"stock_no"`
	StockName         string  `json:"stock_name"`
	Unit              string  `json:"unit"`
	UnitFactor        float64 `json:"unit_factor"`
	ProducedStockNo   int64   `json:"produced_stock_no"`
	ProducedStockName string  `json:"produced_stock_name"`
	TypeName          string  `json:"type_name"`
	SubRecipeNo       int64   `json:"sub_recipe_no"`
}

// RemoteRecipeSubLine is a URETDETALT sub-component of a recipe line.
type RemoteRecipeSubLine struct {
	SubDetailNo  int64   `json:"sub_detail_no"`
	DetailNo     int64   `json:"detail_no"`
	Seq          int     `json:"seq"`
	VariableName string  `json:"variable_name"`
	StockNo      int64   `json:"stock_no"`
	StockName    string  `json:"stock_name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
}

// TableColumn describes one column of a remote table, with the Firebird
// type code already decoded to a name.
type TableColumn struct {
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
	Length    int    `json:"length"`
	Nullable  bool   `json:"nullable"`
}

// Row is one result row keyed by column name, as the bridge returns it.
// Values arrive as JSON scalars, so numeric columns may decode as float64
// or as strings depending on the bridge's serializer; the accessors below
// coerce either form.
type Row map[string]any

func (r Row) Str(col string) string {
	switch v := r[col].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "1"
		}
		return "0"
	}
	return ""
}

func (r Row) Int(col string) int64 {
	switch v := r[col].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Bool interprets Firebird SMALLINT flags: any non-zero value is true.
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case json.Number:
		n, _ := v.Float64()
		return n != 0
	case string:
		s := strings.TrimSpace(v)
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	}
	return false
}

// timeLayouts covers the formats the bridge emits for DATE and TIMESTAMP
// columns depending on its JSON serializer settings.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006", // legacy Turkish date format
}

func (r Row) Time(col string) *time.Time {
	s := r.Str(col)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
