package service

import (
	"errors"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/testutil"
	"gorm.io/gorm"
)

func setupProductionTest(t *testing.T) (*gorm.DB, *repository.Repositories, *ProductionService, *entity.Order) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := NewOrderService(repos.Order, repos.Partner)
	prodSvc := NewProductionService(repos.Order)

	customer := testutil.SeedCustomer(t, db, "客户甲")
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	order, err := orderSvc.Create(CreateOrderRequest{
		OrderCode:  "DH-PROD-001",
		CustomerID: customer.ID,
		Items:      []CreateOrderItem{{ProductID: shirt.ID, Quantity: 5, Price: 200}},
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return db, repos, prodSvc, order
}

func processByCode(t *testing.T, repos *repository.Repositories, orderID, code string) *entity.ProductionProcess {
	t.Helper()
	procs, err := repos.Order.ListProcessesByOrder(orderID)
	if err != nil {
		t.Fatalf("list processes: %v", err)
	}
	for i := range procs {
		if procs[i].ProcessCode == code {
			return &procs[i]
		}
	}
	t.Fatalf("process %s not found", code)
	return nil
}

func TestOrderCreatesFourProcesses(t *testing.T) {
	_, repos, _, order := setupProductionTest(t)

	procs, err := repos.Order.ListProcessesByOrder(order.ID)
	if err != nil {
		t.Fatalf("list processes: %v", err)
	}
	if len(procs) != 4 {
		t.Fatalf("expected 4 processes, got %d", len(procs))
	}
	for _, p := range procs {
		if p.Status != entity.ProcessStatusPending {
			t.Errorf("process %s should start pending, got %s", p.ProcessCode, p.Status)
		}
	}
}

func TestStartOutOfOrderRejected(t *testing.T) {
	_, repos, svc, order := setupProductionTest(t)

	sew := processByCode(t, repos, order.ID, entity.ProcessCodeSew)
	if _, err := svc.Start(sew.ID, "worker-01"); !errors.Is(err, ErrOutOfOrderTransition) {
		t.Fatalf("starting SEW before CUT must fail, got %v", err)
	}
}

func TestProcessSequenceAndOrderCompletion(t *testing.T) {
	db, repos, svc, order := setupProductionTest(t)

	codes := []string{
		entity.ProcessCodeCut,
		entity.ProcessCodeSew,
		entity.ProcessCodeFinish,
		entity.ProcessCodeQC,
	}
	for i, code := range codes {
		proc := processByCode(t, repos, order.ID, code)

		started, err := svc.Start(proc.ID, "worker-01")
		if err != nil {
			t.Fatalf("start %s: %v", code, err)
		}
		if started.Status != entity.ProcessStatusInProgress || started.StartTime == nil {
			t.Errorf("start %s: unexpected state %+v", code, started)
		}

		completed, orderDone, err := svc.Complete(proc.ID)
		if err != nil {
			t.Fatalf("complete %s: %v", code, err)
		}
		if completed.Status != entity.ProcessStatusCompleted || completed.EndTime == nil {
			t.Errorf("complete %s: unexpected state %+v", code, completed)
		}

		isLast := i == len(codes)-1
		if orderDone != isLast {
			t.Errorf("process %s: order_completed=%v, want %v", code, orderDone, isLast)
		}
	}

	var got entity.Order
	db.First(&got, "id = ?", order.ID)
	if got.Status != entity.OrderStatusInProduction {
		t.Errorf("order must be in_production after last process, got %s", got.Status)
	}
}

func TestCompleteNonLastLeavesOrderAlone(t *testing.T) {
	db, repos, svc, order := setupProductionTest(t)

	cut := processByCode(t, repos, order.ID, entity.ProcessCodeCut)
	if _, err := svc.Start(cut.ID, "worker-01"); err != nil {
		t.Fatalf("start CUT: %v", err)
	}
	_, orderDone, err := svc.Complete(cut.ID)
	if err != nil {
		t.Fatalf("complete CUT: %v", err)
	}
	if orderDone {
		t.Error("completing the first process must not complete the order")
	}

	var got entity.Order
	db.First(&got, "id = ?", order.ID)
	if got.Status != entity.OrderStatusPending {
		t.Errorf("order status must be unchanged, got %s", got.Status)
	}
}

func TestStartUnknownProcess(t *testing.T) {
	_, _, svc, _ := setupProductionTest(t)

	if _, err := svc.Start("no-such-process", "worker-01"); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("expected ErrProcessNotFound, got %v", err)
	}
}
