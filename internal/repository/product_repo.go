package repository

import (
	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	Save(tx *gorm.DB, product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	FindAll(search string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindLowStock(threshold int) ([]model.Product, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
	CountByItemType(itemTypeID uuid.UUID) (int64, error)
	Stats(threshold int) (total int64, lowStock int64, valuation decimal.Decimal, err error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
}

func (r *productRepo) FindAll(search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Preload("ItemType").Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(item_name) LIKE LOWER(?) OR LOWER(barcode) LIKE LOWER(?) OR LOWER(company) LIKE LOWER(?)",
			like, like, like,
		)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("ItemType").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("ItemType").
		Where("quantity <= ?", threshold).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *productRepo) CountByItemType(itemTypeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("item_type_id = ?", itemTypeID).Count(&count).Error
	return count, err
}

func (r *productRepo) Stats(threshold int) (int64, int64, decimal.Decimal, error) {
	var total, lowStock int64
	valuation := decimal.Zero

	if err := r.db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return 0, 0, valuation, err
	}
	if err := r.db.Model(&model.Product{}).Where("quantity <= ?", threshold).Count(&lowStock).Error; err != nil {
		return 0, 0, valuation, err
	}

	var raw decimal.NullDecimal
	err := r.db.Model(&model.Product{}).
		Select("SUM(quantity * retail_price)").
		Scan(&raw).Error
	if err != nil {
		return 0, 0, valuation, err
	}
	if raw.Valid {
		valuation = raw.Decimal
	}
	return total, lowStock, valuation, nil
}
