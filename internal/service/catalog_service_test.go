package service

import (
	"errors"
	"testing"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewCategoryRepo(db),
		repository.NewItemTypeRepo(db),
		repository.NewProductRepo(db),
	)
}

func TestCategoryNameUniqueness(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	actor := testActor(admin)
	svc := newCatalogService(db)

	if _, err := svc.CreateCategory(actor, "Electronics"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateCategory(actor, "Electronics"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate create: err = %v, want ErrDuplicateName", err)
	}

	other, err := svc.CreateCategory(actor, "Clothing")
	if err != nil {
		t.Fatalf("create second category: %v", err)
	}
	if _, err := svc.UpdateCategory(actor, other.ID, "Electronics"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("rename onto taken name: err = %v, want ErrDuplicateName", err)
	}

	// Renaming to its own current name is a no-op, not a conflict.
	if _, err := svc.UpdateCategory(actor, other.ID, "Clothing"); err != nil {
		t.Errorf("self rename: %v", err)
	}
}

func TestCategoryDeleteBlockedWhileProductsReferenceIt(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	actor := testActor(admin)

	product := createProduct(t, db, actor, "BC-100", 1, "2.00")
	svc := newCatalogService(db)

	if err := svc.DeleteCategory(actor, product.CategoryID); !errors.Is(err, ErrHasProducts) {
		t.Errorf("err = %v, want ErrHasProducts", err)
	}

	// After the product is gone the category can be removed.
	if err := newProductService(db).DeleteProduct(actor, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := svc.DeleteCategory(actor, product.CategoryID); err != nil {
		t.Errorf("delete after products removed: %v", err)
	}
}

func TestItemTypeLifecycle(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	actor := testActor(admin)
	svc := newCatalogService(db)

	itemType, err := svc.CreateItemType(actor, "Perishable")
	if err != nil {
		t.Fatalf("create item type: %v", err)
	}
	if _, err := svc.CreateItemType(actor, "Perishable"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate create: err = %v, want ErrDuplicateName", err)
	}

	renamed, err := svc.UpdateItemType(actor, itemType.ID, "Durable")
	if err != nil {
		t.Fatalf("update item type: %v", err)
	}
	if renamed.Name != "Durable" {
		t.Errorf("name = %s, want Durable", renamed.Name)
	}

	if err := svc.DeleteItemType(actor, itemType.ID); err != nil {
		t.Fatalf("delete item type: %v", err)
	}
	if _, err := svc.GetItemType(itemType.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted item type should be gone, err = %v", err)
	}
}

func TestItemTypeDeleteBlockedWhileProductsReferenceIt(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	actor := testActor(admin)

	product := createProduct(t, db, actor, "BC-100", 1, "2.00")
	svc := newCatalogService(db)

	if err := svc.DeleteItemType(actor, product.ItemTypeID); !errors.Is(err, ErrHasProducts) {
		t.Errorf("err = %v, want ErrHasProducts", err)
	}
}

func TestCatalogRejectsBlankNames(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin)
	actor := testActor(admin)
	svc := newCatalogService(db)

	var validationErr *ValidationError
	if _, err := svc.CreateCategory(actor, "   "); !errors.As(err, &validationErr) {
		t.Errorf("blank category: err = %v, want ValidationError", err)
	}
	if _, err := svc.CreateItemType(actor, ""); !errors.As(err, &validationErr) {
		t.Errorf("blank item type: err = %v, want ValidationError", err)
	}
}
