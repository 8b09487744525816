package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog item with tiered pricing. All prices are in
// whole VND (đồng); VND has no minor unit.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Code           *string   `gorm:"size:100;uniqueIndex" json:"code,omitempty"`
	ImportPrice    int64     `gorm:"default:0" json:"import_price"`
	RetailPrice    int64     `gorm:"default:0" json:"retail_price"`
	WholesalePrice int64     `gorm:"default:0" json:"wholesale_price"`
	Stock          int       `gorm:"default:0" json:"stock"`
	// Derived fields, recomputed by RecalculateTotals before every save.
	// There is no independent mutation path for them.
	TotalImportAmount int64     `gorm:"default:0" json:"total_import_amount"`
	TotalStockAmount  int64     `gorm:"default:0" json:"total_stock_amount"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RecalculateTotals recomputes the derived stock valuation fields from the
// current prices and stock level. Services call this explicitly before
// persisting; it is deliberately not a GORM hook.
func (p *Product) RecalculateTotals() {
	p.TotalImportAmount = p.ImportPrice * int64(p.Stock)
	p.TotalStockAmount = p.RetailPrice * int64(p.Stock)
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
