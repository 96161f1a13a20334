package entity

import (
	"time"
)

// MaterialStatus 物料状态
const (
	MaterialStatusActive   = "active"
	MaterialStatusInactive = "inactive"
)

// Material 原材料，current_stock 只允许在出入库事务内变更
type Material struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	Code         string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	Unit         string     `json:"unit" gorm:"size:16;not null;default:pcs"`
	CurrentStock float64    `json:"current_stock" gorm:"type:decimal(14,4);not null;default:0"`
	MinStock     float64    `json:"min_stock" gorm:"type:decimal(14,4);not null;default:0"`
	Price        float64    `json:"price" gorm:"type:decimal(14,2);not null;default:0"`
	SupplierID   *string    `json:"supplier_id" gorm:"type:uuid"`
	Status       string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Material) TableName() string {
	return "materials"
}

// MaterialStandard 物料定额（BOM 行）：生产一件产品所需某物料的数量
type MaterialStandard struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID  string    `json:"product_id" gorm:"type:uuid;not null;index"`
	MaterialID string    `json:"material_id" gorm:"type:uuid;not null;index"`
	Quantity   float64   `json:"quantity" gorm:"type:decimal(14,4);not null"`
	Unit       string    `json:"unit" gorm:"size:16;not null;default:pcs"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (MaterialStandard) TableName() string {
	return "material_standards"
}
