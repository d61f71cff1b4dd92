package entity

import (
	"time"
)

// OrderStatus values for the production tracking workflow.
const (
	OrderStatusDraft      = "DRAFT"
	OrderStatusPending    = "PENDING"
	OrderStatusApproved   = "APPROVED"
	OrderStatusRejected   = "REJECTED"
	OrderStatusProduction = "PRODUCTION"
	OrderStatusWarehouse  = "WAREHOUSE"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusCancelled  = "CANCELLED"
)

// OrderSource marks where an order came from.
const (
	OrderSourceManual = "MANUAL"
	OrderSourceNetSim = "NETSIM"
)

// Order is a tracked production order. Orders imported from NetSim carry
// ExternalID "NETSIM-<remote order no>"; uniqueness is enforced by the
// pre-import existence check, not by a database constraint.
type Order struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	ExternalID   string     `json:"external_id" gorm:"size:64;index"`
	Code         string     `json:"code" gorm:"size:50;not null"`
	Source       string     `json:"source" gorm:"size:20;not null;default:MANUAL"`
	CompanyName  string     `json:"company_name" gorm:"size:255"`
	CustomerNo   int64      `json:"customer_no"`
	Status       string     `json:"status" gorm:"size:20;not null;default:DRAFT"`
	OrderDate    *time.Time `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	TotalAmount  float64    `json:"total_amount" gorm:"type:decimal(14,2);default:0"`
	Currency     string     `json:"currency" gorm:"size:10"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedBy    string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`

	Lines []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLineStatus values for line-level workflow.
const (
	OrderLineStatusDraft      = "DRAFT"
	OrderLineStatusPlanned    = "PLANNED"
	OrderLineStatusProduction = "PRODUCTION"
	OrderLineStatusDone       = "DONE"
	OrderLineStatusCancelled  = "CANCELLED"
)

// OrderLine is one produced item of an order. Imported lines carry
// ExternalID "NETSIM-DETAY-<remote line id>" and code "NS-<order>-<line>".
type OrderLine struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID    string    `json:"order_id" gorm:"type:uuid;not null;index"`
	ExternalID string    `json:"external_id" gorm:"size:64;index"`
	Code       string    `json:"code" gorm:"size:50;not null"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	ModelCode  string    `json:"model_code" gorm:"size:64"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
	Unit       string    `json:"unit" gorm:"size:20"`
	UnitPrice  float64   `json:"unit_price" gorm:"type:decimal(14,4);default:0"`
	Amount     float64   `json:"amount" gorm:"type:decimal(14,2);default:0"`
	Note1      string    `json:"note1" gorm:"size:500"`
	Note2      string    `json:"note2" gorm:"size:500"`
	Note3      string    `json:"note3" gorm:"size:500"`
	Note4      string    `json:"note4" gorm:"size:500"`
	RecipeName string    `json:"recipe_name" gorm:"size:255"`
	Seq        int       `json:"seq" gorm:"default:0"`
	Status     string    `json:"status" gorm:"size:20;not null;default:DRAFT"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Order *Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}
