package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a buyer, referenced (not owned) by invoices
type Customer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Email        *string           `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone        *string           `gorm:"size:50" json:"phone,omitempty"`
	Address      *string           `gorm:"type:text" json:"address,omitempty"`
	TaxCode      *string           `gorm:"size:50;uniqueIndex" json:"tax_code,omitempty"`
	CustomerType enum.CustomerType `gorm:"default:0" json:"customer_type"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
