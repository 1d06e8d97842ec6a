package repository

import (
	"time"

	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindAll() ([]model.Sale, error)
	FindBetween(from, to time.Time) ([]model.Sale, error)
	SummaryBetween(from, to time.Time) (count int64, revenue decimal.Decimal, err error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("SaleItems.Product").
		Preload("Customer").
		Preload("Operator").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Preload("SaleItems.Product").
		Preload("Customer").
		Preload("Operator").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindBetween(from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SummaryBetween(from, to time.Time) (int64, decimal.Decimal, error) {
	var count int64
	revenue := decimal.Zero

	base := r.db.Model(&model.Sale{}).Where("created_at BETWEEN ? AND ?", from, to)
	if err := base.Count(&count).Error; err != nil {
		return 0, revenue, err
	}

	var raw decimal.NullDecimal
	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Select("SUM(total)").
		Scan(&raw).Error
	if err != nil {
		return 0, revenue, err
	}
	if raw.Valid {
		revenue = raw.Decimal
	}
	return count, revenue, nil
}
