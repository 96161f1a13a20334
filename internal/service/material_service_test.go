package service

import (
	"errors"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/testutil"
	"gorm.io/gorm"
)

func setupMaterialTest(t *testing.T) (*gorm.DB, *repository.Repositories, *MaterialService, *OrderService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	matSvc := NewMaterialService(repos.Material, repos.Order, repos.StockDoc)
	orderSvc := NewOrderService(repos.Order, repos.Partner)
	return db, repos, matSvc, orderSvc
}

func TestCheckSufficiencyAggregatesAcrossProducts(t *testing.T) {
	db, _, svc, _ := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 100, 50)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	pants := testutil.SeedProduct(t, db, "长裤", 300)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.5)
	testutil.SeedStandard(t, db, pants.ID, fabric.ID, 2.0)

	report, err := svc.CheckSufficiency([]SufficiencyLine{
		{ProductID: shirt.ID, Quantity: 10},
		{ProductID: pants.ID, Quantity: 5},
	})
	if err != nil {
		t.Fatalf("CheckSufficiency: %v", err)
	}

	// 同一物料跨产品累加：1.5*10 + 2.0*5 = 25
	if len(report.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(report.Requirements))
	}
	r := report.Requirements[0]
	if r.Required != 25 {
		t.Errorf("expected required 25, got %v", r.Required)
	}
	if !r.IsSufficient || r.Shortage != 0 {
		t.Errorf("expected sufficient with zero shortage, got %+v", r)
	}
	if !report.AllSufficient {
		t.Error("expected all_sufficient true")
	}
}

func TestCheckSufficiencyShortage(t *testing.T) {
	db, _, svc, _ := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 7, 50)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.0)

	report, err := svc.CheckSufficiency([]SufficiencyLine{
		{ProductID: shirt.ID, Quantity: 10},
	})
	if err != nil {
		t.Fatalf("CheckSufficiency: %v", err)
	}

	// 需求10 库存7 → 缺口3
	r := report.Requirements[0]
	if r.Required != 10 || r.Available != 7 || r.Shortage != 3 {
		t.Errorf("expected required=10 available=7 shortage=3, got %+v", r)
	}
	if r.IsSufficient || report.AllSufficient {
		t.Error("expected insufficient")
	}
}

func TestCheckSufficiencyEmptyLines(t *testing.T) {
	_, _, svc, _ := setupMaterialTest(t)

	if _, err := svc.CheckSufficiency(nil); !errors.Is(err, ErrEmptyOrderItems) {
		t.Fatalf("expected ErrEmptyOrderItems, got %v", err)
	}
}

func TestCheckSufficiencyProductWithoutStandards(t *testing.T) {
	db, _, svc, _ := setupMaterialTest(t)

	testutil.SeedMaterial(t, db, "面料", 100, 50)
	noBOM := testutil.SeedProduct(t, db, "围巾", 80)

	report, err := svc.CheckSufficiency([]SufficiencyLine{
		{ProductID: noBOM.ID, Quantity: 100},
	})
	if err != nil {
		t.Fatalf("CheckSufficiency: %v", err)
	}
	if len(report.Requirements) != 0 {
		t.Errorf("product without standards must contribute nothing, got %d rows", len(report.Requirements))
	}
	if !report.AllSufficient {
		t.Error("empty requirements should roll up to all_sufficient")
	}
}

func TestCheckSufficiencyIsIdempotent(t *testing.T) {
	db, _, svc, _ := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 40, 50)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 2.0)

	lines := []SufficiencyLine{{ProductID: shirt.ID, Quantity: 10}}
	first, err := svc.CheckSufficiency(lines)
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	second, err := svc.CheckSufficiency(lines)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if first.Requirements[0] != second.Requirements[0] {
		t.Errorf("check must be a pure read: %+v vs %+v", first.Requirements[0], second.Requirements[0])
	}

	var m entity.Material
	db.First(&m, "id = ?", fabric.ID)
	if m.CurrentStock != 40 {
		t.Errorf("check must not touch stock, got %v", m.CurrentStock)
	}
}

func seedOrderForExport(t *testing.T, db *gorm.DB, orderSvc *OrderService, productID string, qty int) *entity.Order {
	t.Helper()
	customer := testutil.SeedCustomer(t, db, "客户甲")
	order, err := orderSvc.Create(CreateOrderRequest{
		OrderCode:  "DH-TEST-001",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: productID, Quantity: qty, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestConfirmExportDecrementsStockAndConfirmsOrder(t *testing.T) {
	db, _, svc, orderSvc := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 7, 50)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.0)
	order := seedOrderForExport(t, db, orderSvc, shirt.ID, 10)

	// 仓库按实际领用量覆盖为7
	doc, err := svc.ConfirmExport(ConfirmExportRequest{
		OrderID: order.ID,
		Lines:   []ExportLine{{MaterialID: fabric.ID, Quantity: 7}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("ConfirmExport: %v", err)
	}
	if doc.ExportCode == "" || len(doc.Items) != 1 {
		t.Fatalf("unexpected export doc: %+v", doc)
	}
	if doc.TotalAmount != 7*50 {
		t.Errorf("expected total 350, got %v", doc.TotalAmount)
	}

	var m entity.Material
	db.First(&m, "id = ?", fabric.ID)
	if m.CurrentStock != 0 {
		t.Errorf("expected stock 0 after export, got %v", m.CurrentStock)
	}

	var got entity.Order
	db.First(&got, "id = ?", order.ID)
	if got.Status != entity.OrderStatusConfirmed {
		t.Errorf("expected order confirmed, got %s", got.Status)
	}
}

func TestConfirmExportAllOrNothing(t *testing.T) {
	db, _, svc, orderSvc := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 100, 50)
	buttons := testutil.SeedMaterial(t, db, "纽扣", 5, 1)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.0)
	testutil.SeedStandard(t, db, shirt.ID, buttons.ID, 6.0)
	order := seedOrderForExport(t, db, orderSvc, shirt.ID, 10)

	// 第二行不足，整单必须回滚
	_, err := svc.ConfirmExport(ConfirmExportRequest{
		OrderID: order.ID,
		Lines: []ExportLine{
			{MaterialID: fabric.ID, Quantity: 10},
			{MaterialID: buttons.ID, Quantity: 60},
		},
	}, "test-user-001")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var f, b entity.Material
	db.First(&f, "id = ?", fabric.ID)
	db.First(&b, "id = ?", buttons.ID)
	if f.CurrentStock != 100 || b.CurrentStock != 5 {
		t.Errorf("rollback must leave stock untouched, got fabric=%v buttons=%v", f.CurrentStock, b.CurrentStock)
	}

	var got entity.Order
	db.First(&got, "id = ?", order.ID)
	if got.Status != entity.OrderStatusPending {
		t.Errorf("order must stay pending after failed export, got %s", got.Status)
	}

	var count int64
	db.Model(&entity.MaterialExport{}).Count(&count)
	if count != 0 {
		t.Errorf("no export doc must survive the rollback, got %d", count)
	}
}

func TestConfirmExportClientUnitPrice(t *testing.T) {
	db, _, svc, orderSvc := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 100, 50)
	buttons := testutil.SeedMaterial(t, db, "纽扣", 100, 1)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.0)
	testutil.SeedStandard(t, db, shirt.ID, buttons.ID, 6.0)
	order := seedOrderForExport(t, db, orderSvc, shirt.ID, 10)

	// 第一行按实际采购价覆盖，第二行不传取物料档案价
	doc, err := svc.ConfirmExport(ConfirmExportRequest{
		OrderID: order.ID,
		Lines: []ExportLine{
			{MaterialID: fabric.ID, Quantity: 10, UnitPrice: 45},
			{MaterialID: buttons.ID, Quantity: 60},
		},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("ConfirmExport: %v", err)
	}

	if doc.Items[0].UnitPrice != 45 {
		t.Errorf("expected client unit price 45, got %v", doc.Items[0].UnitPrice)
	}
	if doc.Items[1].UnitPrice != 1 {
		t.Errorf("expected fallback to material price 1, got %v", doc.Items[1].UnitPrice)
	}
	if doc.TotalAmount != 10*45+60*1 {
		t.Errorf("expected total 510, got %v", doc.TotalAmount)
	}
}

func TestCreateImportIncreasesStock(t *testing.T) {
	db, _, svc, _ := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 10, 50)

	doc, err := svc.CreateImport(CreateImportRequest{
		Lines: []ImportLine{{MaterialID: fabric.ID, Quantity: 15, UnitPrice: 48}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("CreateImport: %v", err)
	}
	if doc.TotalAmount != 15*48 {
		t.Errorf("expected total 720, got %v", doc.TotalAmount)
	}

	var m entity.Material
	db.First(&m, "id = ?", fabric.ID)
	if m.CurrentStock != 25 {
		t.Errorf("expected stock 25, got %v", m.CurrentStock)
	}
}

func TestCheckSufficiencyForOrder(t *testing.T) {
	db, _, svc, orderSvc := setupMaterialTest(t)

	fabric := testutil.SeedMaterial(t, db, "面料", 7, 50)
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	testutil.SeedStandard(t, db, shirt.ID, fabric.ID, 1.0)
	order := seedOrderForExport(t, db, orderSvc, shirt.ID, 10)

	report, err := svc.CheckSufficiencyForOrder(order.ID)
	if err != nil {
		t.Fatalf("CheckSufficiencyForOrder: %v", err)
	}
	if report.Requirements[0].Shortage != 3 {
		t.Errorf("expected shortage 3, got %v", report.Requirements[0].Shortage)
	}
}
