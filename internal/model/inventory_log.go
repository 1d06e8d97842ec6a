package model

import "github.com/google/uuid"

// Ledger reasons form a fixed vocabulary; no other values are written.
const (
	ReasonInitialStock     = "Initial Stock"
	ReasonManualCorrection = "Manual Correction"
	ReasonSale             = "Sale"
)

// InventoryLog is the append-only stock ledger. One row is written for
// every change to a product's quantity, in the same transaction as the
// change itself. Rows are never updated or deleted, so for any product
// the sum of QuantityChange equals its current quantity.
type InventoryLog struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	QuantityChange int    `gorm:"not null" json:"quantity_change"` // positive = stock added
	Reason         string `gorm:"type:varchar(50);not null" json:"reason"`
}
