package repository

import (
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create 在事务内创建订单、明细与四道工序
func (r *OrderRepository) Create(order *entity.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Preload("Customer").
		Preload("Items").Preload("Items.Product").
		Preload("Processes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderListParams struct {
	Status     string
	CustomerID string
	Keyword    string
	Page       int
	Size       int
}

func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.Model(&entity.Order{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Keyword != "" {
		query = query.Where("order_code ILIKE ?", "%"+params.Keyword+"%")
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

// ReplaceItems 整单替换明细并更新订单头（编辑订单用），单事务完成
func (r *OrderRepository) ReplaceItems(order *entity.Order, items []entity.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"customer_id":  order.CustomerID,
				"order_type":   order.OrderType,
				"total_amount": order.TotalAmount,
				"debt_amount":  order.DebtAmount,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 级联删除工序、明细与订单
func (r *OrderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&entity.ProductionProcess{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).
			Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Order{}).Error
	})
}

func (r *OrderRepository) UpdateStatus(id, status string) (int64, error) {
	res := r.db.Model(&entity.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) GetItems(orderID string) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.db.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// --- 生产工序 ---

func (r *OrderRepository) GetProcessByID(id string) (*entity.ProductionProcess, error) {
	var proc entity.ProductionProcess
	if err := r.db.Where("id = ?", id).First(&proc).Error; err != nil {
		return nil, err
	}
	return &proc, nil
}

// ListProcessesByOrder 按创建顺序返回订单的全部工序
func (r *OrderRepository) ListProcessesByOrder(orderID string) ([]entity.ProductionProcess, error) {
	var procs []entity.ProductionProcess
	err := r.db.Where("order_id = ?", orderID).Order("created_at").Find(&procs).Error
	return procs, err
}

func (r *OrderRepository) UpdateProcess(proc *entity.ProductionProcess) error {
	return r.db.Save(proc).Error
}

// ListProductionOrders 生产看板：进行中或历史订单及其工序
func (r *OrderRepository) ListProductionOrders(history bool) ([]entity.Order, error) {
	statuses := []string{entity.OrderStatusConfirmed, entity.OrderStatusInProduction}
	if history {
		statuses = []string{entity.OrderStatusCompleted, entity.OrderStatusCancelled}
	}
	var orders []entity.Order
	err := r.db.Preload("Customer").
		Preload("Processes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// DB 返回底层db用于事务
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}
