package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bn4g2003/garment-factory/internal/config"
	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/handler"
	"github.com/bn4g2003/garment-factory/internal/middleware"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting garment-factory service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate tables", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化 Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis not reachable, refresh tokens will not survive", zap.Error(err))
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, db)
	handlers := handler.NewHandlers(services, cfg)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := buildRouter(cfg, zapLogger, handlers)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func buildRouter(cfg *config.Config, zapLogger *zap.Logger, handlers *handler.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "garment-factory"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "garment-factory"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "garment-factory",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// 登录不需要认证
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		v1.POST("/auth/logout", handlers.Auth.Logout)
		v1.GET("/auth/me", handlers.Auth.Me)

		// 用户管理，仅管理员
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.GET("", handlers.User.List)
			users.POST("", handlers.User.Create)
			users.GET("/:id", handlers.User.Get)
			users.PUT("/:id", handlers.User.Update)
			users.DELETE("/:id", handlers.User.Delete)
		}

		// 基础档案
		customers := v1.Group("/customers")
		{
			customers.GET("", handlers.Catalog.ListCustomers)
			customers.POST("", handlers.Catalog.CreateCustomer)
			customers.GET("/:id", handlers.Catalog.GetCustomer)
			customers.PUT("/:id", handlers.Catalog.UpdateCustomer)
			customers.DELETE("/:id", handlers.Catalog.DeleteCustomer)
		}
		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", handlers.Catalog.ListSuppliers)
			suppliers.POST("", handlers.Catalog.CreateSupplier)
			suppliers.PUT("/:id", handlers.Catalog.UpdateSupplier)
			suppliers.DELETE("/:id", handlers.Catalog.DeleteSupplier)
		}
		stores := v1.Group("/stores")
		{
			stores.GET("", handlers.Catalog.ListStores)
			stores.POST("", middleware.RequireRole("admin"), handlers.Catalog.CreateStore)
		}
		products := v1.Group("/products")
		{
			products.GET("", handlers.Catalog.ListProducts)
			products.POST("", handlers.Catalog.CreateProduct)
			products.GET("/:id", handlers.Catalog.GetProduct)
			products.PUT("/:id", handlers.Catalog.UpdateProduct)
			products.DELETE("/:id", handlers.Catalog.DeleteProduct)
		}

		// 订单
		orders := v1.Group("/orders")
		{
			orders.GET("", handlers.Order.List)
			orders.POST("", handlers.Order.Create)
			orders.GET("/:id", handlers.Order.Get)
			orders.PUT("/:id", handlers.Order.Update)
			orders.DELETE("/:id", handlers.Order.Delete)
			orders.PUT("/:id/status", handlers.Order.SetStatus)
			orders.GET("/:id/material-check", handlers.Material.CheckSufficiencyForOrder)
		}

		// 物料
		materials := v1.Group("/materials")
		{
			materials.GET("", handlers.Material.List)
			materials.POST("", middleware.RequireRole("warehouse", "factory"), handlers.Material.Create)
			materials.GET("/:id", handlers.Material.Get)
			materials.PUT("/:id", middleware.RequireRole("warehouse", "factory"), handlers.Material.Update)
			materials.DELETE("/:id", middleware.RequireRole("warehouse"), handlers.Material.Delete)
		}
		standards := v1.Group("/material-standards")
		{
			standards.GET("", handlers.Material.ListStandards)
			standards.POST("", handlers.Material.CreateStandard)
			standards.DELETE("/:id", handlers.Material.DeleteStandard)
		}
		v1.POST("/material-check", handlers.Material.CheckSufficiency)

		// 原料出入库
		materialExports := v1.Group("/material-exports", middleware.RequireRole("warehouse", "factory"))
		{
			materialExports.GET("", handlers.Material.ListExports)
			materialExports.POST("", handlers.Material.ConfirmExport)
			materialExports.GET("/:id", handlers.Material.GetExport)
		}
		materialImports := v1.Group("/material-imports", middleware.RequireRole("warehouse", "factory"))
		{
			materialImports.GET("", handlers.Material.ListImports)
			materialImports.POST("", handlers.Material.CreateImport)
		}

		// 生产
		production := v1.Group("/production")
		{
			production.GET("/board", handlers.Production.Board)
			production.POST("/processes/:id/start", middleware.RequireRole("production", "factory"), handlers.Production.Start)
			production.POST("/processes/:id/complete", middleware.RequireRole("production", "factory"), handlers.Production.Complete)
		}

		// 成品仓
		warehouse := v1.Group("/warehouse")
		{
			warehouse.GET("/finished-products", handlers.Warehouse.ListFinished)
			warehouse.POST("/orders/:id/intake", middleware.RequireRole("warehouse"), handlers.Warehouse.Intake)
			warehouse.POST("/product-exports", middleware.RequireRole("warehouse"), handlers.Warehouse.ExportProducts)
			warehouse.GET("/product-exports", handlers.Warehouse.ListExports)
		}

		// 财务
		finance := v1.Group("/finance", middleware.RequireRole("admin", "store"))
		{
			finance.GET("/transactions", handlers.Finance.List)
			finance.POST("/transactions", handlers.Finance.Create)
			finance.GET("/overview", handlers.Finance.Overview)
		}

		// 报表
		reports := v1.Group("/reports")
		{
			reports.GET("/overview", handlers.Report.Overview)
			reports.GET("/inventory", handlers.Report.Inventory)
			reports.GET("/inventory/export", handlers.Report.ExportInventory)
			reports.GET("/revenue", handlers.Report.Revenue)
			reports.GET("/production", handlers.Report.Production)
			reports.GET("/stores", handlers.Report.Stores)
		}
	}

	return router
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}
