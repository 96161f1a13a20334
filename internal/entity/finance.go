package entity

import (
	"time"
)

// TransactionType 收支类型（沿用对外暴露的 thu/chi 取值）
const (
	TxTypeIncome  = "thu" // 收入
	TxTypeExpense = "chi" // 支出
)

// TransactionStatus 交易状态
const (
	TxStatusCompleted = "completed"
	TxStatusCancelled = "cancelled"
)

// Transaction 收支流水，store_id 为空表示工厂账
type Transaction struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	TransactionCode string    `json:"transaction_code" gorm:"size:50;not null;uniqueIndex"`
	TransactionType string    `json:"transaction_type" gorm:"size:16;not null;index"`
	Amount          float64   `json:"amount" gorm:"type:decimal(14,2);not null"`
	PaymentMethod   string    `json:"payment_method" gorm:"size:32"`
	Description     string    `json:"description" gorm:"type:text"`
	StoreID         *string   `json:"store_id" gorm:"type:uuid;index"`
	CreatedBy       string    `json:"created_by" gorm:"type:uuid;not null"`
	TransactionDate time.Time `json:"transaction_date" gorm:"index"`
	Status          string    `json:"status" gorm:"size:20;not null;default:completed"`
	CreatedAt       time.Time `json:"created_at"`

	Store *Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}

func (Transaction) TableName() string {
	return "transactions"
}
