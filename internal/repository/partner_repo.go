package repository

import (
	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

// PartnerRepository 客户、供应商与门店
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// --- 客户 ---

func (r *PartnerRepository) CreateCustomer(c *entity.Customer) error {
	return r.db.Create(c).Error
}

func (r *PartnerRepository) GetCustomerByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PartnerRepository) UpdateCustomer(c *entity.Customer) error {
	return r.db.Save(c).Error
}

func (r *PartnerRepository) DeleteCustomer(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Customer{}).Error
}

func (r *PartnerRepository) ListCustomers() ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

// --- 供应商 ---

func (r *PartnerRepository) CreateSupplier(s *entity.Supplier) error {
	return r.db.Create(s).Error
}

func (r *PartnerRepository) GetSupplierByID(id string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PartnerRepository) UpdateSupplier(s *entity.Supplier) error {
	return r.db.Save(s).Error
}

func (r *PartnerRepository) DeleteSupplier(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Supplier{}).Error
}

func (r *PartnerRepository) ListSuppliers() ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.Order("created_at DESC").Find(&suppliers).Error
	return suppliers, err
}

// --- 门店 ---

func (r *PartnerRepository) CreateStore(s *entity.Store) error {
	return r.db.Create(s).Error
}

func (r *PartnerRepository) GetStoreByID(id string) (*entity.Store, error) {
	var s entity.Store
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PartnerRepository) ListStores() ([]entity.Store, error) {
	var stores []entity.Store
	err := r.db.Order("code").Find(&stores).Error
	return stores, err
}
