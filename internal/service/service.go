package service

import (
	"github.com/bn4g2003/garment-factory/internal/config"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Auth       *AuthService
	User       *UserService
	Catalog    *CatalogService
	Order      *OrderService
	Material   *MaterialService
	Production *ProductionService
	Warehouse  *WarehouseService
	Finance    *FinanceService
	Report     *ReportService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, db *gorm.DB) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		User:       NewUserService(repos.User),
		Catalog:    NewCatalogService(repos.Partner, repos.Product),
		Order:      NewOrderService(repos.Order, repos.Partner),
		Material:   NewMaterialService(repos.Material, repos.Order, repos.StockDoc),
		Production: NewProductionService(repos.Order),
		Warehouse:  NewWarehouseService(repos.Product, repos.Order, repos.StockDoc),
		Finance:    NewFinanceService(repos.Finance),
		Report:     NewReportService(db, repos.Finance),
	}
}
