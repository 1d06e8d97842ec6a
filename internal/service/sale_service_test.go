package service

import (
	"errors"
	"sync"
	"testing"

	"go-pos-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateSaleHappyPath(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	p1 := createProduct(t, db, actor, "BC-001", 5, "10.00")
	p2 := createProduct(t, db, actor, "BC-002", 1, "4.50")

	svc := newSaleService(db)
	sale, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items: []SaleLine{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	wantTotal := decimal.RequireFromString("24.50") // 2*10.00 + 1*4.50
	if !sale.Total.Equal(wantTotal) {
		t.Errorf("total = %s, want %s", sale.Total, wantTotal)
	}
	if sale.Status != model.SaleCompleted {
		t.Errorf("status = %s, want %s", sale.Status, model.SaleCompleted)
	}
	if sale.PaymentMethod != model.PaymentCash {
		t.Errorf("payment method = %s, want %s", sale.PaymentMethod, model.PaymentCash)
	}
	if sale.CustomerID != customer.ID || sale.OperatorID != operator.ID {
		t.Errorf("customer/operator not recorded correctly")
	}
	if len(sale.SaleItems) != 2 {
		t.Fatalf("sale items = %d, want 2", len(sale.SaleItems))
	}
	if sale.SaleItems[0].Product == nil {
		t.Errorf("sale items should resolve product summaries")
	}
	if !sale.SaleItems[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("line 1 price snapshot = %s, want 10.00", sale.SaleItems[0].Price)
	}

	if got := productQuantity(t, db, p1.ID); got != 3 {
		t.Errorf("p1 quantity = %d, want 3", got)
	}
	if got := productQuantity(t, db, p2.ID); got != 0 {
		t.Errorf("p2 quantity = %d, want 0", got)
	}

	// One "Sale" ledger row per line, on top of the initial stock row.
	logs := ledgerEntries(t, db, p1.ID)
	if len(logs) != 2 {
		t.Fatalf("p1 ledger rows = %d, want 2", len(logs))
	}
	last := logs[len(logs)-1]
	if last.Reason != model.ReasonSale || last.QuantityChange != -2 {
		t.Errorf("p1 ledger = (%s, %d), want (Sale, -2)", last.Reason, last.QuantityChange)
	}
	if last.UserID != operator.ID {
		t.Errorf("ledger entry not attributed to acting operator")
	}
}

func TestCreateSalePriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	product := createProduct(t, db, actor, "BC-SNAP", 5, "10.00")

	svc := newSaleService(db)
	sale, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []SaleLine{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	// Bump the list price afterwards; the recorded sale must not move.
	if err := db.Model(&model.Product{}).Where("id = ?", product.ID).
		Update("retail_price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	reloaded, err := svc.GetSale(sale.ID)
	if err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if !reloaded.SaleItems[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("price snapshot = %s, want 10.00", reloaded.SaleItems[0].Price)
	}
	if !reloaded.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("total = %s, want 10.00", reloaded.Total)
	}
}

func TestCreateSaleInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	p1 := createProduct(t, db, actor, "BC-001", 5, "10.00")
	p2 := createProduct(t, db, actor, "BC-002", 0, "4.50")

	svc := newSaleService(db)
	_, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items: []SaleLine{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.ProductID != p2.ID || stockErr.Requested != 1 || stockErr.Available != 0 {
		t.Errorf("error should name the offending product and shortfall, got %+v", stockErr)
	}

	// No partial effects: p1 untouched, no Sale ledger rows, no sale rows.
	if got := productQuantity(t, db, p1.ID); got != 5 {
		t.Errorf("p1 quantity = %d, want 5 (unchanged)", got)
	}
	for _, entry := range ledgerEntries(t, db, p1.ID) {
		if entry.Reason == model.ReasonSale {
			t.Errorf("unexpected Sale ledger row after aborted sale")
		}
	}
	var saleCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	if saleCount != 0 {
		t.Errorf("sale count = %d, want 0", saleCount)
	}
}

func TestCreateSaleUnknownProductRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	p1 := createProduct(t, db, actor, "BC-001", 5, "10.00")
	ghost := uuid.New()

	svc := newSaleService(db)
	_, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items: []SaleLine{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: ghost, Quantity: 1},
		},
	})

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want ProductNotFoundError", err)
	}
	if notFound.ProductID != ghost {
		t.Errorf("error names product %s, want %s", notFound.ProductID, ghost)
	}
	if got := productQuantity(t, db, p1.ID); got != 5 {
		t.Errorf("p1 quantity = %d, want 5 (unchanged)", got)
	}
}

func TestCreateSaleInputValidation(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)
	product := createProduct(t, db, actor, "BC-001", 5, "10.00")

	svc := newSaleService(db)

	if _, err := svc.CreateSale(actor, &CreateSaleRequest{
		Items: []SaleLine{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrCustomerRequired) {
		t.Errorf("missing customer: err = %v, want ErrCustomerRequired", err)
	}

	if _, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
	}); !errors.Is(err, ErrEmptyItems) {
		t.Errorf("empty items: err = %v, want ErrEmptyItems", err)
	}

	var validationErr *ValidationError
	if _, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []SaleLine{{ProductID: product.ID, Quantity: 0}},
	}); !errors.As(err, &validationErr) {
		t.Errorf("non-positive quantity: err = %v, want ValidationError", err)
	}

	if _, err := svc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: uuid.New(),
		Items:      []SaleLine{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("unknown customer: err = %v, want ErrCustomerNotFound", err)
	}

	// Nothing above should have touched stock.
	if got := productQuantity(t, db, product.ID); got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	product := createProduct(t, db, actor, "BC-LAST", 1, "10.00")
	svc := newSaleService(db)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateSale(actor, &CreateSaleRequest{
				CustomerID: customer.ID,
				Items:      []SaleLine{{ProductID: product.ID, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Errorf("loser should fail with InsufficientStockError, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if got := productQuantity(t, db, product.ID); got != 0 {
		t.Errorf("final quantity = %d, want 0 (never negative)", got)
	}
}

func TestResubmittedSaleCreatesSecondSale(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	product := createProduct(t, db, actor, "BC-001", 4, "10.00")
	svc := newSaleService(db)

	req := &CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []SaleLine{{ProductID: product.ID, Quantity: 2}},
	}

	first, err := svc.CreateSale(actor, req)
	if err != nil {
		t.Fatalf("first sale: %v", err)
	}
	second, err := svc.CreateSale(actor, req)
	if err != nil {
		t.Fatalf("second sale: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("identical payloads must create independent sales")
	}
	if got := productQuantity(t, db, product.ID); got != 0 {
		t.Errorf("quantity = %d, want 0 after two decrements", got)
	}
}

func TestLedgerReconcilesWithQuantity(t *testing.T) {
	db := newTestDB(t)
	operator := seedUser(t, db, "staff@example.com", model.RoleStaff)
	customer := seedUser(t, db, "customer@example.com", model.RoleCustomer)
	actor := testActor(operator)

	product := createProduct(t, db, actor, "BC-001", 10, "10.00")
	productSvc := newProductService(db)
	saleSvc := newSaleService(db)

	// Manual correction down to 7.
	if _, err := productSvc.UpdateProduct(actor, product.ID, &ProductRequest{
		ItemName:       product.ItemName,
		Barcode:        product.Barcode,
		Quantity:       7,
		WholesalePrice: product.WholesalePrice,
		RetailPrice:    product.RetailPrice,
		CategoryID:     product.CategoryID,
		ItemTypeID:     product.ItemTypeID,
	}); err != nil {
		t.Fatalf("manual correction: %v", err)
	}

	// Sell 3.
	if _, err := saleSvc.CreateSale(actor, &CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []SaleLine{{ProductID: product.ID, Quantity: 3}},
	}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	quantity := productQuantity(t, db, product.ID)
	if quantity != 4 {
		t.Errorf("quantity = %d, want 4", quantity)
	}
	if sum := ledgerSum(t, db, product.ID); sum != quantity {
		t.Errorf("ledger sum = %d, quantity = %d; ledger must reconcile with stock", sum, quantity)
	}

	logs := ledgerEntries(t, db, product.ID)
	wantReasons := []string{model.ReasonInitialStock, model.ReasonManualCorrection, model.ReasonSale}
	if len(logs) != len(wantReasons) {
		t.Fatalf("ledger rows = %d, want %d", len(logs), len(wantReasons))
	}
	for i, want := range wantReasons {
		if logs[i].Reason != want {
			t.Errorf("ledger[%d].Reason = %s, want %s", i, logs[i].Reason, want)
		}
	}
}
