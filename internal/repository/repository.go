package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	User     *UserRepository
	Partner  *PartnerRepository
	Product  *ProductRepository
	Material *MaterialRepository
	Order    *OrderRepository
	StockDoc *StockDocRepository
	Finance  *FinanceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Partner:  NewPartnerRepository(db),
		Product:  NewProductRepository(db),
		Material: NewMaterialRepository(db),
		Order:    NewOrderRepository(db),
		StockDoc: NewStockDocRepository(db),
		Finance:  NewFinanceRepository(db),
	}
}
