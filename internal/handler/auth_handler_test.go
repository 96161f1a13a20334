package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/bn4g2003/garment-factory/internal/config"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/bn4g2003/garment-factory/internal/testutil"
)

func setupAuthHandlerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  2 * time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "garment-factory",
		},
	}

	repos := repository.NewRepositories(db)
	authSvc := service.NewAuthService(repos.User, nil, cfg)
	h := NewAuthHandler(authSvc)

	router.POST("/api/v1/auth/login", h.Login)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Me)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestLoginAndMe(t *testing.T) {
	env := setupAuthHandlerTest(t)
	user := testutil.SeedTestUser(t, env.DB, "xuongtruong", "secret123", "factory")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "xuongtruong",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["access_token"].(string) == "" {
		t.Fatal("expected access token")
	}
	token := data["access_token"].(string)

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	me := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if me["id"].(string) != user.ID {
		t.Errorf("expected user %s, got %v", user.ID, me["id"])
	}
	if _, leaked := me["password"]; leaked {
		t.Error("password must never appear in responses")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupAuthHandlerTest(t)
	testutil.SeedTestUser(t, env.DB, "xuongtruong", "secret123", "factory")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "xuongtruong",
		"password": "wrong",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	env := setupAuthHandlerTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "ghost",
		"password": "whatever",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
