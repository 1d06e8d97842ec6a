package service

import (
	"testing"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A single connection keeps every session on the same in-memory database
	// and serializes concurrent transactions the way a row lock would.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.ItemType{},
		&model.Product{}, &model.Sale{}, &model.SaleItem{}, &model.InventoryLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		Email:     email,
		Username:  email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedCatalog(t *testing.T, db *gorm.DB) (*model.Category, *model.ItemType) {
	t.Helper()

	category := &model.Category{Name: "Electronics-" + uuid.NewString()}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	itemType := &model.ItemType{Name: "Gadget-" + uuid.NewString()}
	if err := db.Create(itemType).Error; err != nil {
		t.Fatalf("seed item type: %v", err)
	}
	return category, itemType
}

func testActor(user *model.User) model.Actor {
	return model.Actor{ID: user.ID, Email: user.Email, Role: user.Role}
}

// newProductService wires a ProductService without the websocket hub.
func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepo(db),
		repository.NewInventoryLogRepo(db),
		db, nil,
	)
}

func newSaleService(db *gorm.DB) SaleService {
	return NewSaleService(
		repository.NewSaleRepo(db),
		repository.NewUserRepo(db),
		db, nil,
	)
}

// createProduct goes through the service so the initial stock is ledgered
// the same way production code does it.
func createProduct(t *testing.T, db *gorm.DB, actor model.Actor, barcode string, quantity int, retail string) *model.Product {
	t.Helper()

	category, itemType := seedCatalog(t, db)
	svc := newProductService(db)
	product, err := svc.CreateProduct(actor, &ProductRequest{
		ItemName:       "Item " + barcode,
		Barcode:        barcode,
		Quantity:       quantity,
		WholesalePrice: decimal.RequireFromString(retail).Div(decimal.NewFromInt(2)),
		RetailPrice:    decimal.RequireFromString(retail),
		CategoryID:     category.ID,
		ItemTypeID:     itemType.ID,
	})
	if err != nil {
		t.Fatalf("create product %s: %v", barcode, err)
	}
	return product
}

func productQuantity(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var product model.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Quantity
}

func ledgerEntries(t *testing.T, db *gorm.DB, productID uuid.UUID) []model.InventoryLog {
	t.Helper()

	var logs []model.InventoryLog
	if err := db.Where("product_id = ?", productID).Order("created_at ASC, id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return logs
}

func ledgerSum(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	sum := 0
	for _, entry := range ledgerEntries(t, db, productID) {
		sum += entry.QuantityChange
	}
	return sum
}
