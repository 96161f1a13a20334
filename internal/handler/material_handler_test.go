package handler

import (
	"net/http"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/bn4g2003/garment-factory/internal/testutil"
)

func setupMaterialHandlerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	matSvc := service.NewMaterialService(repos.Material, repos.Order, repos.StockDoc)
	orderSvc := service.NewOrderService(repos.Order, repos.Partner)
	h := NewMaterialHandler(matSvc)
	oh := NewOrderHandler(orderSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/materials", h.List)
	api.POST("/materials", h.Create)
	api.GET("/materials/:id", h.Get)
	api.POST("/material-check", h.CheckSufficiency)
	api.POST("/material-exports", h.ConfirmExport)
	api.GET("/material-exports", h.ListExports)
	api.POST("/material-imports", h.CreateImport)
	api.POST("/orders", oh.Create)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestMaterialCheckOverHTTP(t *testing.T) {
	env := setupMaterialHandlerTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedMaterial(t, env.DB, "面料", 7, 50)
	shirt := testutil.SeedProduct(t, env.DB, "衬衫", 200)
	testutil.SeedStandard(t, env.DB, shirt.ID, fabric.ID, 1.0)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/material-check", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"product_id": shirt.ID, "quantity": 10},
		},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	reqs := data["requirements"].([]interface{})
	first := reqs[0].(map[string]interface{})
	if first["required"].(float64) != 10 || first["shortage"].(float64) != 3 {
		t.Errorf("expected required=10 shortage=3, got %+v", first)
	}

	// 空明细
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/material-check",
		map[string]interface{}{"lines": []map[string]interface{}{}}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty lines, got %d: %s", w.Code, w.Body.String())
	}
}

func TestConfirmExportInsufficientOverHTTP(t *testing.T) {
	env := setupMaterialHandlerTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedMaterial(t, env.DB, "面料", 5, 50)
	shirt := testutil.SeedProduct(t, env.DB, "衬衫", 200)
	customer := testutil.SeedCustomer(t, env.DB, "客户甲")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
		"order_code":  "DH-MAT-001",
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"product_id": shirt.ID, "quantity": 10, "price": 200},
		},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d: %s", w.Code, w.Body.String())
	}
	orderID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/material-exports", map[string]interface{}{
		"order_id": orderID,
		"lines": []map[string]interface{}{
			{"material_id": fabric.ID, "quantity": 10},
		},
	}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d: %s", w.Code, w.Body.String())
	}

	var m entity.Material
	env.DB.First(&m, "id = ?", fabric.ID)
	if m.CurrentStock != 5 {
		t.Errorf("stock must be untouched after 409, got %v", m.CurrentStock)
	}
}

func TestMaterialImportOverHTTP(t *testing.T) {
	env := setupMaterialHandlerTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedMaterial(t, env.DB, "面料", 5, 50)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/material-imports", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"material_id": fabric.ID, "quantity": 20, "unit_price": 45},
		},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var m entity.Material
	env.DB.First(&m, "id = ?", fabric.ID)
	if m.CurrentStock != 25 {
		t.Errorf("expected stock 25, got %v", m.CurrentStock)
	}
}
