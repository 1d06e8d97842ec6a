package service

import (
	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyQuantityDelta is the only code path that changes Product.Quantity.
// It applies the signed delta with a conditional update and appends the
// matching ledger row inside the caller's transaction, so stock and ledger
// always move together.
//
// Negative deltas only succeed while quantity stays non-negative: the
// WHERE clause re-checks available stock in the same statement as the
// decrement, which serializes concurrent sales on the same row without an
// explicit lock. Zero rows affected means the product is gone or the stock
// ran out; the caller gets a typed error naming which.
func applyQuantityDelta(tx *gorm.DB, productID uuid.UUID, delta int, reason string, actor model.Actor) error {
	if delta == 0 {
		return nil
	}

	q := tx.Model(&model.Product{}).Where("id = ?", productID)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", delta),
		"updated_by": actor.Email,
	})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var current model.Product
		if err := tx.First(&current, "id = ?", productID).Error; err != nil {
			return &ProductNotFoundError{ProductID: productID}
		}
		return &InsufficientStockError{
			ProductID: productID,
			ItemName:  current.ItemName,
			Requested: -delta,
			Available: current.Quantity,
		}
	}

	entry := &model.InventoryLog{
		ProductID:      productID,
		UserID:         actor.ID,
		QuantityChange: delta,
		Reason:         reason,
	}
	entry.CreatedBy = actor.Email
	entry.UpdatedBy = actor.Email
	return tx.Create(entry).Error
}
