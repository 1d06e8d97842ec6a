package repository

import (
	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemTypeRepository interface {
	Create(itemType *model.ItemType) error
	Save(itemType *model.ItemType) error
	Delete(id uuid.UUID, deletedBy string) error
	FindAll(search string) ([]model.ItemType, error)
	FindByID(id uuid.UUID) (*model.ItemType, error)
	FindByName(name string) (*model.ItemType, error)
}

type itemTypeRepo struct {
	db *gorm.DB
}

func NewItemTypeRepo(db *gorm.DB) ItemTypeRepository {
	return &itemTypeRepo{db}
}

func (r *itemTypeRepo) Create(itemType *model.ItemType) error {
	return r.db.Create(itemType).Error
}

func (r *itemTypeRepo) Save(itemType *model.ItemType) error {
	return r.db.Save(itemType).Error
}

func (r *itemTypeRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ItemType{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ItemType{}, "id = ?", id).Error
	})
}

func (r *itemTypeRepo) FindAll(search string) ([]model.ItemType, error) {
	var itemTypes []model.ItemType
	q := r.db.Order("created_at DESC")
	if search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	err := q.Find(&itemTypes).Error
	return itemTypes, err
}

func (r *itemTypeRepo) FindByID(id uuid.UUID) (*model.ItemType, error) {
	var itemType model.ItemType
	err := r.db.First(&itemType, "id = ?", id).Error
	return &itemType, err
}

func (r *itemTypeRepo) FindByName(name string) (*model.ItemType, error) {
	var itemType model.ItemType
	err := r.db.First(&itemType, "name = ?", name).Error
	return &itemType, err
}
