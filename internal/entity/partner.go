package entity

import (
	"time"
)

// Customer 客户
type Customer struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Code      string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Phone     string     `json:"phone" gorm:"size:32"`
	Address   string     `json:"address" gorm:"size:256"`
	Debt      float64    `json:"debt" gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

// Supplier 供应商
type Supplier struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Code      string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Phone     string     `json:"phone" gorm:"size:32"`
	Address   string     `json:"address" gorm:"size:256"`
	Debt      float64    `json:"debt" gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
