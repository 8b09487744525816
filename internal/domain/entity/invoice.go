package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a sales invoice. TotalAmount is denormalized: it equals
// the sum of rounded per-item discounted totals at the moment of the last
// save. Concurrent edits to the same invoice are last-writer-wins.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	InvoiceCode   string             `gorm:"size:100;uniqueIndex;not null" json:"invoice_code"`
	InvoiceType   enum.InvoiceType   `gorm:"default:0" json:"invoice_type"`
	InvoiceDate   time.Time          `gorm:"not null" json:"invoice_date"`
	TotalAmount   int64              `gorm:"default:0" json:"total_amount"`
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	DebtStartDate *time.Time         `json:"debt_start_date,omitempty"`
	DebtEndDate   *time.Time         `json:"debt_end_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line item. Price is snapshotted from the product's price
// list when the invoice is created or edited; later product price changes do
// not affect it.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	Discount  float64   `gorm:"default:0" json:"discount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
