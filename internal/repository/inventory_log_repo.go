package repository

import (
	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLogRepository reads the stock ledger. Writes happen only through
// the service layer's quantity-delta operation, never directly.
type InventoryLogRepository interface {
	FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error)
	SumByProduct(productID uuid.UUID) (int64, error)
}

type inventoryLogRepo struct {
	db *gorm.DB
}

func NewInventoryLogRepo(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db}
}

func (r *inventoryLogRepo) FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *inventoryLogRepo) SumByProduct(productID uuid.UUID) (int64, error) {
	var sum *int64
	err := r.db.Model(&model.InventoryLog{}).
		Where("product_id = ?", productID).
		Select("SUM(quantity_change)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
