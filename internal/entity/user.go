package entity

import (
	"time"
)

// UserRole 用户角色
const (
	RoleAdmin      = "admin"
	RoleFactory    = "factory"
	RoleWarehouse  = "warehouse"
	RoleProduction = "production"
	RoleStore      = "store"
)

// UserStatus 用户状态
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User 系统用户，Password 存 bcrypt 哈希
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	Username   string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Password   string    `json:"-" gorm:"size:128;not null"`
	FullName   string    `json:"full_name" gorm:"size:128;not null"`
	Email      string    `json:"email" gorm:"size:128"`
	Phone      string    `json:"phone" gorm:"size:32"`
	Role       string    `json:"role" gorm:"size:32;not null"`
	StoreID    *string   `json:"store_id" gorm:"type:uuid"`
	Department string    `json:"department" gorm:"size:64"`
	Status     string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Store *Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}

func (User) TableName() string {
	return "users"
}

// Store 门店
type Store struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Code      string    `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Address   string    `json:"address" gorm:"size:256"`
	Phone     string    `json:"phone" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
