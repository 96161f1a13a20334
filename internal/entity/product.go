package entity

import (
	"time"
)

// ProductStatus 产品状态
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product 成衣产品
type Product struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Code        string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Price       float64    `json:"price" gorm:"type:decimal(14,2);not null;default:0"`
	Status      string     `json:"status" gorm:"size:16;not null;default:active"`
	Description string     `json:"description" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`

	Standards []MaterialStandard `json:"standards,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// FinishedProduct 成品库存，按 (product_id, store_id) 聚合；
// store_id 为空表示工厂仓
type FinishedProduct struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null;index"`
	StoreID   *string   `json:"store_id" gorm:"type:uuid;index"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	Location  string    `json:"location" gorm:"size:64"`
	BatchCode string    `json:"batch_code" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Store   *Store   `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}

func (FinishedProduct) TableName() string {
	return "finished_products"
}
