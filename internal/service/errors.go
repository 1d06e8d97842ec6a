package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for client-caused failures. Handlers map these to HTTP
// statuses; none of them leave side effects behind.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive or deleted")
	ErrUserNotFound       = errors.New("user not found")
	ErrCustomerRequired   = errors.New("customer reference is required")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrEmptyItems         = errors.New("sale must contain at least one item")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateName      = errors.New("a record with this name already exists")
	ErrDuplicateBarcode   = errors.New("product with this barcode already exists")
	ErrDuplicateUser      = errors.New("user with this email or username already exists")
	ErrHasProducts        = errors.New("cannot delete while products reference it")
)

// ValidationError reports a client input that failed structural validation.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on rule '%s'", e.Field, e.Rule)
}

// ProductNotFoundError aborts a sale when a line references an unknown
// product; it names the offending id so the caller knows which line failed.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError aborts a sale when a line requests more units than
// the product has on hand.
type InsufficientStockError struct {
	ProductID uuid.UUID
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s': requested %d, available %d",
		e.ItemName, e.Requested, e.Available)
}
