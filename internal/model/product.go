package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Quantity is current stock and must never be
// negative as a committed state; every change to it is paired with an
// InventoryLog row in the same transaction.
type Product struct {
	BaseModel
	ItemName         string          `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	Barcode          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"barcode" validate:"required"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Company          string          `gorm:"type:varchar(255)" json:"company"`
	WholesalePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"wholesale_price"`
	RetailPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"retail_price"`
	Tax              decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax"`
	Description      string          `gorm:"type:text" json:"description,omitempty"`
	ShortDescription string          `gorm:"type:varchar(500)" json:"short_description,omitempty"`
	Picture          string          `gorm:"type:varchar(500)" json:"picture,omitempty"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	ItemTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"item_type_id" validate:"uuid_required"`
	ItemType   *ItemType `gorm:"foreignKey:ItemTypeID" json:"item_type,omitempty" validate:"-"`

	InventoryLogs []InventoryLog `json:"inventory_logs,omitempty"`
}
