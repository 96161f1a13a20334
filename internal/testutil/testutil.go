package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "garment-factory-test-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory sqlite database and migrates
// the full schema. Single connection, transactions behave like postgres
// for everything the services rely on.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"uid":  userID,
		"name": name,
		"role": role,
		"iss":  "garment-factory",
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
		"jti":  fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default admin test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Admin", "admin")
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedTestUser creates a test user with a bcrypt password
func SeedTestUser(t *testing.T, db *gorm.DB, username, password, role string) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entity.User{
		ID:       uuid.New().String(),
		Username: username,
		Password: string(hash),
		FullName: "用户 " + username,
		Role:     role,
		Status:   entity.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedCustomer creates a test customer
func SeedCustomer(t *testing.T, db *gorm.DB, name string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID:   uuid.New().String(),
		Code: fmt.Sprintf("KH%d", time.Now().UnixNano()%1000000),
		Name: name,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return c
}

// SeedProduct creates a test product
func SeedProduct(t *testing.T, db *gorm.DB, name string, price float64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:     uuid.New().String(),
		Code:   fmt.Sprintf("SP%d", time.Now().UnixNano()%1000000),
		Name:   name,
		Price:  price,
		Status: entity.ProductStatusActive,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return p
}

// SeedMaterial creates a test material with the given stock
func SeedMaterial(t *testing.T, db *gorm.DB, name string, stock, price float64) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:           uuid.New().String(),
		Code:         fmt.Sprintf("VL%d", time.Now().UnixNano()%1000000),
		Name:         name,
		Unit:         "m",
		CurrentStock: stock,
		Price:        price,
		Status:       entity.MaterialStatusActive,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}
	return m
}

// SeedStandard creates a BOM line: per-unit material quantity for a product
func SeedStandard(t *testing.T, db *gorm.DB, productID, materialID string, qty float64) *entity.MaterialStandard {
	t.Helper()
	std := &entity.MaterialStandard{
		ID:         uuid.New().String(),
		ProductID:  productID,
		MaterialID: materialID,
		Quantity:   qty,
		Unit:       "m",
	}
	if err := db.Create(std).Error; err != nil {
		t.Fatalf("Failed to seed material standard: %v", err)
	}
	return std
}
