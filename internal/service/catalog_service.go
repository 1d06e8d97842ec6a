package service

import (
	"errors"
	"strings"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages the two lookup entities products reference:
// categories and item types. Both are unique by name and cannot be deleted
// while products still point at them.
type CatalogService interface {
	CreateCategory(actor model.Actor, name string) (*model.Category, error)
	UpdateCategory(actor model.Actor, id uuid.UUID, name string) (*model.Category, error)
	DeleteCategory(actor model.Actor, id uuid.UUID) error
	GetCategory(id uuid.UUID) (*model.Category, error)
	GetAllCategories(search string) ([]model.Category, error)

	CreateItemType(actor model.Actor, name string) (*model.ItemType, error)
	UpdateItemType(actor model.Actor, id uuid.UUID, name string) (*model.ItemType, error)
	DeleteItemType(actor model.Actor, id uuid.UUID) error
	GetItemType(id uuid.UUID) (*model.ItemType, error)
	GetAllItemTypes(search string) ([]model.ItemType, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	itemTypeRepo repository.ItemTypeRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(cRepo repository.CategoryRepository, itRepo repository.ItemTypeRepository, pRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: cRepo,
		itemTypeRepo: itRepo,
		productRepo:  pRepo,
	}
}

func (s *catalogService) CreateCategory(actor model.Actor, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Rule: "required"}
	}
	if existing, err := s.categoryRepo.FindByName(name); err == nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	category := &model.Category{Name: name}
	category.CreatedBy = actor.Email
	category.UpdatedBy = actor.Email
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(actor model.Actor, id uuid.UUID, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Rule: "required"}
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != category.Name {
		if dup, err := s.categoryRepo.FindByName(name); err == nil && dup.ID != uuid.Nil {
			return nil, ErrDuplicateName
		}
	}

	category.Name = name
	category.UpdatedBy = actor.Email
	if err := s.categoryRepo.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(actor model.Actor, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasProducts
	}
	return s.categoryRepo.Delete(id, actor.Email)
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetAllCategories(search string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(search)
}

func (s *catalogService) CreateItemType(actor model.Actor, name string) (*model.ItemType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Rule: "required"}
	}
	if existing, err := s.itemTypeRepo.FindByName(name); err == nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	itemType := &model.ItemType{Name: name}
	itemType.CreatedBy = actor.Email
	itemType.UpdatedBy = actor.Email
	if err := s.itemTypeRepo.Create(itemType); err != nil {
		return nil, err
	}
	return itemType, nil
}

func (s *catalogService) UpdateItemType(actor model.Actor, id uuid.UUID, name string) (*model.ItemType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Rule: "required"}
	}

	itemType, err := s.itemTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != itemType.Name {
		if dup, err := s.itemTypeRepo.FindByName(name); err == nil && dup.ID != uuid.Nil {
			return nil, ErrDuplicateName
		}
	}

	itemType.Name = name
	itemType.UpdatedBy = actor.Email
	if err := s.itemTypeRepo.Save(itemType); err != nil {
		return nil, err
	}
	return itemType, nil
}

func (s *catalogService) DeleteItemType(actor model.Actor, id uuid.UUID) error {
	if _, err := s.itemTypeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.productRepo.CountByItemType(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasProducts
	}
	return s.itemTypeRepo.Delete(id, actor.Email)
}

func (s *catalogService) GetItemType(id uuid.UUID) (*model.ItemType, error) {
	itemType, err := s.itemTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return itemType, nil
}

func (s *catalogService) GetAllItemTypes(search string) ([]model.ItemType, error) {
	return s.itemTypeRepo.FindAll(search)
}
