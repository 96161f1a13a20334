package entity

import (
	"time"
)

// OrderStatus 订单状态（沿用对外暴露的小写状态值）
// 注意：in_production 表示「四道工序全部完成、等待成品入库」，
// 而不是「正在生产中」，历史遗留语义，勿改名。
const (
	OrderStatusPending         = "pending"          // 待确认
	OrderStatusWaitingMaterial = "waiting_material" // 等待物料
	OrderStatusConfirmed       = "confirmed"        // 已确认（物料已出库，生产中）
	OrderStatusCancelled       = "cancelled"        // 已取消
	OrderStatusInProduction    = "in_production"    // 工序全部完成，待入库
	OrderStatusCompleted       = "completed"        // 成品已入库
	OrderStatusShipped         = "shipped"          // 成品已出库
)

// Order 客户订单
type Order struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderCode   string     `json:"order_code" gorm:"size:50;not null;uniqueIndex"`
	CustomerID  string     `json:"customer_id" gorm:"type:uuid;not null;index"`
	OrderType   string     `json:"order_type" gorm:"size:32"`
	TotalAmount float64    `json:"total_amount" gorm:"type:decimal(14,2);not null;default:0"`
	DebtAmount  float64    `json:"debt_amount" gorm:"type:decimal(14,2);not null;default:0"`
	Status      string     `json:"status" gorm:"size:20;not null;default:pending;index"`
	CreatedBy   string     `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Customer  *Customer           `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items     []OrderItem         `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Processes []ProductionProcess `json:"processes,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细，price 为下单时的成交单价，与产品现价无关
type OrderItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID   string    `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(14,2);not null"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
