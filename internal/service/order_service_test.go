package service

import (
	"errors"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/testutil"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, *OrderService, *entity.Customer, *entity.Product) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewOrderService(repos.Order, repos.Partner)
	customer := testutil.SeedCustomer(t, db, "客户甲")
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	return db, svc, customer, shirt
}

func TestCreateOrderComputesTotal(t *testing.T) {
	db, svc, customer, shirt := setupOrderTest(t)
	pants := testutil.SeedProduct(t, db, "长裤", 300)

	order, err := svc.Create(CreateOrderRequest{
		OrderCode:  "DH-001",
		CustomerID: customer.ID,
		Items: []CreateOrderItem{
			{ProductID: shirt.ID, Quantity: 10, Price: 200},
			{ProductID: pants.ID, Quantity: 5, Price: 300},
		},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.TotalAmount != 10*200+5*300 {
		t.Errorf("expected total 3500, got %v", order.TotalAmount)
	}
	if order.Status != entity.OrderStatusPending {
		t.Errorf("new order must be pending, got %s", order.Status)
	}
	if len(order.Processes) != 4 {
		t.Errorf("expected 4 processes, got %d", len(order.Processes))
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	_, svc, _, shirt := setupOrderTest(t)

	_, err := svc.Create(CreateOrderRequest{
		OrderCode:  "DH-002",
		CustomerID: "no-such-customer",
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 1, Price: 200}},
	}, "test-user-001")
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	db, svc, customer, shirt := setupOrderTest(t)

	order, err := svc.Create(CreateOrderRequest{
		OrderCode:  "DH-003",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 10, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(order.ID, UpdateOrderRequest{
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 3, Price: 180}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TotalAmount != 3*180 {
		t.Errorf("expected total 540, got %v", updated.TotalAmount)
	}

	var count int64
	db.Model(&entity.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Errorf("items must be replaced wholesale, got %d rows", count)
	}
}

func TestDeleteOnlyPendingOrders(t *testing.T) {
	db, svc, customer, shirt := setupOrderTest(t)

	order, err := svc.Create(CreateOrderRequest{
		OrderCode:  "DH-004",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 1, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	db.Model(&entity.Order{}).Where("id = ?", order.ID).
		Update("status", entity.OrderStatusConfirmed)
	if err := svc.Delete(order.ID); !errors.Is(err, ErrOrderNotDeletable) {
		t.Fatalf("expected ErrOrderNotDeletable, got %v", err)
	}

	db.Model(&entity.Order{}).Where("id = ?", order.ID).
		Update("status", entity.OrderStatusPending)
	if err := svc.Delete(order.ID); err != nil {
		t.Fatalf("Delete pending: %v", err)
	}

	var procCount int64
	db.Model(&entity.ProductionProcess{}).Where("order_id = ?", order.ID).Count(&procCount)
	if procCount != 0 {
		t.Errorf("processes must cascade on delete, got %d", procCount)
	}
}

func TestSetStatusAllowList(t *testing.T) {
	_, svc, customer, shirt := setupOrderTest(t)

	order, err := svc.Create(CreateOrderRequest{
		OrderCode:  "DH-005",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 1, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// shipped 不在人工改状态的允许清单内，只有出库流程能设
	if _, err := svc.SetStatus(order.ID, entity.OrderStatusShipped); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for shipped, got %v", err)
	}
	if _, err := svc.SetStatus(order.ID, "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for bogus, got %v", err)
	}

	got, err := svc.SetStatus(order.ID, entity.OrderStatusWaitingMaterial)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != entity.OrderStatusWaitingMaterial {
		t.Errorf("expected waiting_material, got %s", got.Status)
	}

	// 不校验前置状态：cancelled 之后仍可拉回 confirmed
	if _, err := svc.SetStatus(order.ID, entity.OrderStatusCancelled); err != nil {
		t.Fatalf("SetStatus cancelled: %v", err)
	}
	if _, err := svc.SetStatus(order.ID, entity.OrderStatusConfirmed); err != nil {
		t.Fatalf("SetStatus confirmed after cancelled: %v", err)
	}
}

func TestSetStatusUnknownOrder(t *testing.T) {
	_, svc, _, _ := setupOrderTest(t)

	if _, err := svc.SetStatus("no-such-order", entity.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
