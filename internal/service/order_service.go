package service

import (
	"errors"
	"fmt"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	orderRepo   *repository.OrderRepository
	partnerRepo *repository.PartnerRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, partnerRepo *repository.PartnerRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, partnerRepo: partnerRepo}
}

// allowedStatuses 直接改状态接口的允许清单。
// 此接口不校验前置状态，历史行为如此，管理端依赖它做人工纠偏。
var allowedStatuses = map[string]bool{
	entity.OrderStatusWaitingMaterial: true,
	entity.OrderStatusConfirmed:       true,
	entity.OrderStatusCancelled:       true,
	entity.OrderStatusInProduction:    true,
	entity.OrderStatusCompleted:       true,
}

type CreateOrderItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gte=0"`
}

type CreateOrderRequest struct {
	OrderCode  string            `json:"order_code" binding:"required"`
	CustomerID string            `json:"customer_id" binding:"required"`
	OrderType  string            `json:"order_type"`
	Items      []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

// Create 创建订单：明细与四道工序在同一事务内落库，
// 订单总额 = Σ 数量×单价，初始状态 pending
func (s *OrderService) Create(req CreateOrderRequest, userID string) (*entity.Order, error) {
	if _, err := s.partnerRepo.GetCustomerByID(req.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, req.CustomerID)
	}

	order := &entity.Order{
		ID:         uuid.New().String(),
		OrderCode:  req.OrderCode,
		CustomerID: req.CustomerID,
		OrderType:  req.OrderType,
		Status:     entity.OrderStatusPending,
		CreatedBy:  userID,
	}

	var total float64
	for _, item := range req.Items {
		total += float64(item.Quantity) * item.Price
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	order.TotalAmount = total
	order.DebtAmount = total

	for _, stage := range entity.ProcessStages {
		order.Processes = append(order.Processes, entity.ProductionProcess{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProcessCode: stage.Code,
			ProcessName: stage.Name,
			Status:      entity.ProcessStatusPending,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetByID(id string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(params)
}

type UpdateOrderRequest struct {
	CustomerID string            `json:"customer_id" binding:"required"`
	OrderType  string            `json:"order_type"`
	Items      []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

// Update 编辑订单：重算总额并整单替换明细（单事务）
func (s *OrderService) Update(id string, req UpdateOrderRequest) (*entity.Order, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	var total float64
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		total += float64(item.Quantity) * item.Price
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order.CustomerID = req.CustomerID
	order.OrderType = req.OrderType
	order.TotalAmount = total
	order.DebtAmount = total

	if err := s.orderRepo.ReplaceItems(order, items); err != nil {
		return nil, fmt.Errorf("更新订单失败: %w", err)
	}
	return s.GetByID(id)
}

// Delete 删除订单，仅限 pending 状态；工序与明细级联删除
func (s *OrderService) Delete(id string) error {
	order, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderStatusPending {
		return ErrOrderNotDeletable
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return fmt.Errorf("删除订单失败: %w", err)
	}
	return nil
}

// SetStatus 直接改写订单状态。只校验目标值在允许清单内，
// 不校验当前状态到目标状态的边是否合法（见 DESIGN.md）。
func (s *OrderService) SetStatus(id, status string) (*entity.Order, error) {
	if !allowedStatuses[status] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	rows, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if rows == 0 {
		return nil, ErrOrderNotFound
	}
	return s.GetByID(id)
}
