package handler

import (
	"net/http"
	"testing"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/bn4g2003/garment-factory/internal/testutil"
)

func setupOrderHandlerTest(t *testing.T) (*testutil.TestEnv, *entity.Customer, *entity.Product) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	orderSvc := service.NewOrderService(repos.Order, repos.Partner)
	matSvc := service.NewMaterialService(repos.Material, repos.Order, repos.StockDoc)
	h := NewOrderHandler(orderSvc)
	mh := NewMaterialHandler(matSvc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/orders", h.List)
	api.POST("/orders", h.Create)
	api.GET("/orders/:id", h.Get)
	api.PUT("/orders/:id", h.Update)
	api.DELETE("/orders/:id", h.Delete)
	api.PUT("/orders/:id/status", h.SetStatus)
	api.GET("/orders/:id/material-check", mh.CheckSufficiencyForOrder)

	customer := testutil.SeedCustomer(t, db, "客户甲")
	shirt := testutil.SeedProduct(t, db, "衬衫", 200)
	return &testutil.TestEnv{DB: db, Router: router, T: t}, customer, shirt
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env, customer, shirt := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()

	// 创建
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
		"order_code":  "DH-HTTP-001",
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"product_id": shirt.ID, "quantity": 10, "price": 200},
		},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total_amount"].(float64) != 2000 {
		t.Errorf("expected total 2000, got %v", data["total_amount"])
	}
	orderID := data["id"].(string)

	// 详情
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/orders/"+orderID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 非法状态值
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/orders/"+orderID+"/status",
		map[string]interface{}{"status": "bogus"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus status, got %d: %s", w.Code, w.Body.String())
	}

	// 改到允许的状态
	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/orders/"+orderID+"/status",
		map[string]interface{}{"status": "confirmed"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 非 pending 不可删
	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/orders/"+orderID, nil, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting confirmed order, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	env, _, _ := setupOrderHandlerTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/orders", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestOrderNotFoundOverHTTP(t *testing.T) {
	env, _, _ := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/orders/no-such-order", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMaterialCheckForOrderOverHTTP(t *testing.T) {
	env, customer, shirt := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()

	fabric := testutil.SeedMaterial(t, env.DB, "面料", 7, 50)
	testutil.SeedStandard(t, env.DB, shirt.ID, fabric.ID, 1.0)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
		"order_code":  "DH-HTTP-002",
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"product_id": shirt.ID, "quantity": 10, "price": 200},
		},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	orderID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/orders/"+orderID+"/material-check", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["all_sufficient"].(bool) {
		t.Error("expected all_sufficient false")
	}
	reqs := data["requirements"].([]interface{})
	first := reqs[0].(map[string]interface{})
	if first["shortage"].(float64) != 3 {
		t.Errorf("expected shortage 3, got %v", first["shortage"])
	}
}
