package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
)

// Payment methods accepted at the counter.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
)

// Sale records one completed checkout. CustomerID is the party the sale is
// recorded against, OperatorID the authenticated actor who processed it.
// Sales are immutable once created: there is no update or delete path.
type Sale struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;index" json:"operator_id"`
	Operator   *User     `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`

	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        SaleStatus      `gorm:"type:varchar(20);not null" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(20);not null" json:"payment_method"`

	SaleItems []SaleItem `json:"sale_items"`
}

// SaleItem is one line of a sale. Price is the product's retail price
// captured at sale time, so historical totals stay stable when list
// prices change later.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
