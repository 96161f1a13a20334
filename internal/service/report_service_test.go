package service

import (
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/testutil"
)

func TestInventoryReportStockStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewReportService(db, repos.Finance)

	low := testutil.SeedMaterial(t, db, "面料", 8, 50)
	mid := testutil.SeedMaterial(t, db, "纽扣", 14, 2)
	good := testutil.SeedMaterial(t, db, "拉链", 100, 5)
	for _, id := range []string{low.ID, mid.ID, good.ID} {
		db.Model(&entity.Material{}).Where("id = ?", id).Update("min_stock", 10)
	}

	rows, err := svc.InventoryReport()
	if err != nil {
		t.Fatalf("InventoryReport: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	byName := make(map[string]InventoryRow)
	for _, r := range rows {
		byName[r.Name] = r
	}
	if got := byName["面料"].StockStatus; got != "low" {
		t.Errorf("面料 expected low, got %s", got)
	}
	if !byName["面料"].LowStock {
		t.Errorf("面料 expected low_stock=true")
	}
	if got := byName["纽扣"].StockStatus; got != "medium" {
		t.Errorf("纽扣 expected medium, got %s", got)
	}
	if got := byName["拉链"].StockStatus; got != "good" {
		t.Errorf("拉链 expected good, got %s", got)
	}
	if v := byName["面料"].StockValue; v != 8*50 {
		t.Errorf("expected stock value 400, got %v", v)
	}
}

func TestDashboardOverviewCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, repos.Partner)
	svc := NewReportService(db, repos.Finance)

	customer := testutil.SeedCustomer(t, db, "客户甲")
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	order, err := orderSvc.Create(CreateOrderRequest{
		OrderCode:  "DH-RPT-001",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 5, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	db.Model(&entity.Order{}).Where("id = ?", order.ID).
		Update("status", entity.OrderStatusConfirmed)

	o, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.TotalOrders != 1 {
		t.Errorf("expected 1 order, got %d", o.TotalOrders)
	}
	if o.OrdersInProgress != 1 {
		t.Errorf("expected 1 in progress, got %d", o.OrdersInProgress)
	}
	if o.TotalRevenue != 1000 {
		t.Errorf("expected revenue 1000, got %v", o.TotalRevenue)
	}
}
