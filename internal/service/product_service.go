package service

import (
	"errors"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/ws"
	"go-pos-inventory/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRequest struct {
	ItemName         string          `json:"item_name" validate:"required"`
	Barcode          string          `json:"barcode" validate:"required"`
	Quantity         int             `json:"quantity" validate:"gte=0"`
	Company          string          `json:"company"`
	WholesalePrice   decimal.Decimal `json:"wholesale_price"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	Tax              decimal.Decimal `json:"tax"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	Picture          string          `json:"picture"`
	CategoryID       uuid.UUID       `json:"category_id" validate:"uuid_required"`
	ItemTypeID       uuid.UUID       `json:"item_type_id" validate:"uuid_required"`
}

type ProductService interface {
	CreateProduct(actor model.Actor, req *ProductRequest) (*model.Product, error)
	UpdateProduct(actor model.Actor, id uuid.UUID, req *ProductRequest) (*model.Product, error)
	DeleteProduct(actor model.Actor, id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts(search string) ([]model.Product, error)
	GetInventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error)
}

type productService struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, logRepo repository.InventoryLogRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		logRepo:     logRepo,
		db:          db,
		wsHub:       hub,
	}
}

// CreateProduct inserts the product and, when an initial quantity is given,
// the matching "Initial Stock" ledger row in the same transaction.
func (s *productService) CreateProduct(actor model.Actor, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Field: errs[0].FailedField, Rule: errs[0].Tag}
	}
	if req.WholesalePrice.IsNegative() || req.RetailPrice.IsNegative() || req.Tax.IsNegative() {
		return nil, &ValidationError{Field: "price", Rule: "gte=0"}
	}

	existing, err := s.productRepo.FindByBarcode(req.Barcode)
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateBarcode
	}

	product := &model.Product{
		ItemName:         req.ItemName,
		Barcode:          req.Barcode,
		Quantity:         0, // stock arrives through the ledger below
		Company:          req.Company,
		WholesalePrice:   req.WholesalePrice,
		RetailPrice:      req.RetailPrice,
		Tax:              req.Tax,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Picture:          req.Picture,
		CategoryID:       req.CategoryID,
		ItemTypeID:       req.ItemTypeID,
	}
	product.CreatedBy = actor.Email
	product.UpdatedBy = actor.Email

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		if req.Quantity > 0 {
			return applyQuantityDelta(tx, product.ID, req.Quantity, model.ReasonInitialStock, actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		return nil, err
	}

	s.broadcastStock("product_created", created, actor)
	return created, nil
}

// UpdateProduct saves field changes and ledgers any quantity difference as
// a "Manual Correction" with the signed delta, atomically.
func (s *productService) UpdateProduct(actor model.Actor, id uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Field: errs[0].FailedField, Rule: errs[0].Tag}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Barcode != existing.Barcode {
			dup, err := s.productRepo.FindByBarcode(req.Barcode)
			if err == nil && dup != nil && dup.ID != uuid.Nil {
				return ErrDuplicateBarcode
			}
		}

		delta := req.Quantity - existing.Quantity

		existing.ItemName = req.ItemName
		existing.Barcode = req.Barcode
		existing.Company = req.Company
		existing.WholesalePrice = req.WholesalePrice
		existing.RetailPrice = req.RetailPrice
		existing.Tax = req.Tax
		existing.Description = req.Description
		existing.ShortDescription = req.ShortDescription
		existing.Picture = req.Picture
		existing.CategoryID = req.CategoryID
		existing.ItemTypeID = req.ItemTypeID
		existing.UpdatedBy = actor.Email

		if err := s.productRepo.Save(tx, &existing); err != nil {
			return err
		}
		// Quantity itself moves only through the ledger operation.
		return applyQuantityDelta(tx, existing.ID, delta, model.ReasonManualCorrection, actor)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.broadcastStock("product_updated", updated, actor)
	return updated, nil
}

func (s *productService) DeleteProduct(actor model.Actor, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.productRepo.Delete(id, actor.Email)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetAllProducts(search string) ([]model.Product, error) {
	return s.productRepo.FindAll(search)
}

func (s *productService) GetInventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.logRepo.FindByProduct(productID)
}

func (s *productService) broadcastStock(action string, product *model.Product, actor model.Actor) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":        product.ID,
			"barcode":   product.Barcode,
			"item_name": product.ItemName,
			"quantity":  product.Quantity,
		},
		"user": map[string]interface{}{
			"id":    actor.ID,
			"email": actor.Email,
		},
	})
}
