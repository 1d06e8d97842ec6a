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

// SaleLine is one (product, quantity) pair of a sale request. The client
// never supplies a price; the unit price is always re-read from the product
// inside the transaction.
type SaleLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	CustomerID    uuid.UUID  `json:"customer_id" validate:"uuid_required"`
	PaymentMethod string     `json:"payment_method"`
	Items         []SaleLine `json:"items" validate:"required,min=1,dive"`
}

type SaleService interface {
	CreateSale(actor model.Actor, req *CreateSaleRequest) (*model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewSaleService(saleRepo repository.SaleRepository, userRepo repository.UserRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo: saleRepo,
		userRepo: userRepo,
		db:       db,
		wsHub:    hub,
	}
}

// CreateSale validates the cart, snapshots prices, decrements stock and
// writes the ledger and sale rows as one transaction. Any failure rolls the
// whole unit of work back: no quantity change, no ledger row, no sale.
func (s *saleService) CreateSale(actor model.Actor, req *CreateSaleRequest) (*model.Sale, error) {
	if req.CustomerID == uuid.Nil {
		return nil, ErrCustomerRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Field: errs[0].FailedField, Rule: errs[0].Tag}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCash
	}

	sale := &model.Sale{
		CustomerID:    req.CustomerID,
		OperatorID:    actor.ID,
		Status:        model.SaleCompleted,
		PaymentMethod: paymentMethod,
	}
	sale.CreatedBy = actor.Email
	sale.UpdatedBy = actor.Email

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer model.User
		if err := tx.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))

		// Lines are processed in request order, which fixes ledger order
		// within this sale.
		for _, line := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}

			if err := applyQuantityDelta(tx, product.ID, -line.Quantity, model.ReasonSale, actor); err != nil {
				return err
			}

			// Price snapshot: the retail price read in this transaction,
			// never a client-supplied value.
			total = total.Add(product.RetailPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			item := model.SaleItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.RetailPrice,
			}
			item.CreatedBy = actor.Email
			item.UpdatedBy = actor.Email
			items = append(items, item)
		}

		sale.Total = total
		sale.SaleItems = items
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	persisted, err := s.saleRepo.FindByID(sale.ID)
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":    "stock_update",
			"action":  "sale_completed",
			"sale_id": persisted.ID,
			"total":   persisted.Total,
			"user": map[string]interface{}{
				"id":    actor.ID,
				"email": actor.Email,
			},
		})
	}

	return persisted, nil
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
