package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseService 成品仓：入库（接收完工订单）与出库（发门店/销售）
type WarehouseService struct {
	productRepo *repository.ProductRepository
	orderRepo   *repository.OrderRepository
	stockRepo   *repository.StockDocRepository
}

func NewWarehouseService(productRepo *repository.ProductRepository, orderRepo *repository.OrderRepository, stockRepo *repository.StockDocRepository) *WarehouseService {
	return &WarehouseService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		stockRepo:   stockRepo,
	}
}

func (s *WarehouseService) ListFinished(storeID *string) ([]entity.FinishedProduct, error) {
	return s.productRepo.ListFinishedProducts(storeID)
}

// Intake 成品入库：订单四道工序完成后，把订单明细并入工厂仓库存，
// 批次号记订单号，订单转 completed。同一事务。
func (s *WarehouseService) Intake(orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != entity.OrderStatusInProduction {
		return nil, fmt.Errorf("%w: 订单 %s 当前状态 %s，不能入库", ErrInvalidStatus, order.OrderCode, order.Status)
	}

	err = s.productRepo.DB().Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var fp entity.FinishedProduct
			err := tx.Where("product_id = ? AND store_id IS NULL", item.ProductID).First(&fp).Error
			switch {
			case err == nil:
				if err := tx.Model(&entity.FinishedProduct{}).
					Where("id = ?", fp.ID).
					Updates(map[string]interface{}{
						"quantity":   gorm.Expr("quantity + ?", item.Quantity),
						"batch_code": order.OrderCode,
					}).Error; err != nil {
					return fmt.Errorf("累加成品库存失败: %w", err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				fp = entity.FinishedProduct{
					ID:        uuid.New().String(),
					ProductID: item.ProductID,
					StoreID:   nil,
					Quantity:  item.Quantity,
					Location:  "factory",
					BatchCode: order.OrderCode,
				}
				if err := tx.Create(&fp).Error; err != nil {
					return fmt.Errorf("创建成品库存失败: %w", err)
				}
			default:
				return err
			}
		}
		return tx.Model(&entity.Order{}).
			Where("id = ?", orderID).
			Update("status", entity.OrderStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

type ProductExportLine struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type ExportProductsRequest struct {
	OrderID    *string             `json:"order_id"`
	StoreID    *string             `json:"store_id"`
	ExportType string              `json:"export_type"`
	Lines      []ProductExportLine `json:"lines" binding:"required,min=1,dive"`
}

// ExportProducts 成品出库：从工厂仓扣减，条件更新复核库存，
// 任何一行不足则整单回滚。带 order_id 时订单转 shipped。
func (s *WarehouseService) ExportProducts(req ExportProductsRequest, userID string) (*entity.ProductExport, error) {
	doc := &entity.ProductExport{
		ID:         uuid.New().String(),
		ExportCode: fmt.Sprintf("XTP%d", time.Now().UnixMilli()),
		OrderID:    req.OrderID,
		StoreID:    req.StoreID,
		ExportType: req.ExportType,
		ExportedBy: userID,
		ExportDate: time.Now(),
	}

	err := s.productRepo.DB().Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range req.Lines {
			var p entity.Product
			if err := tx.Where("id = ?", line.ProductID).First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			rows, err := s.productRepo.DecrementFinishedStock(tx, line.ProductID, nil, line.Quantity)
			if err != nil {
				return fmt.Errorf("扣减成品库存失败: %w", err)
			}
			if rows == 0 {
				return fmt.Errorf("%w: %s 出库 %d 件库存不足", ErrInsufficientStock, p.Name, line.Quantity)
			}

			price := line.UnitPrice
			if price == 0 {
				price = p.Price
			}
			total += float64(line.Quantity) * price
			doc.Items = append(doc.Items, entity.ProductExportItem{
				ID:              uuid.New().String(),
				ProductExportID: doc.ID,
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				UnitPrice:       price,
			})
		}
		doc.TotalAmount = total

		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("创建成品出库单失败: %w", err)
		}
		if req.OrderID != nil {
			return tx.Model(&entity.Order{}).
				Where("id = ?", *req.OrderID).
				Update("status", entity.OrderStatusShipped).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *WarehouseService) ListProductExports(page, size int) ([]entity.ProductExport, int64, error) {
	return s.stockRepo.ListProductExports(page, size)
}
