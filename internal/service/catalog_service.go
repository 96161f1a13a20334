package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService 基础档案：客户、供应商、门店、产品
type CatalogService struct {
	partnerRepo *repository.PartnerRepository
	productRepo *repository.ProductRepository
}

func NewCatalogService(partnerRepo *repository.PartnerRepository, productRepo *repository.ProductRepository) *CatalogService {
	return &CatalogService{partnerRepo: partnerRepo, productRepo: productRepo}
}

// genCode 编号留空时按前缀+时间戳生成
func genCode(prefix, code string) string {
	if code != "" {
		return code
	}
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixMilli())
}

// --- 客户 ---

type CustomerRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *CatalogService) CreateCustomer(req CustomerRequest) (*entity.Customer, error) {
	c := &entity.Customer{
		ID:      uuid.New().String(),
		Code:    genCode("KH", req.Code),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.partnerRepo.CreateCustomer(c); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}
	return c, nil
}

func (s *CatalogService) GetCustomer(id string) (*entity.Customer, error) {
	c, err := s.partnerRepo.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCustomers() ([]entity.Customer, error) {
	return s.partnerRepo.ListCustomers()
}

func (s *CatalogService) UpdateCustomer(id string, req CustomerRequest) (*entity.Customer, error) {
	c, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Phone = req.Phone
	c.Address = req.Address
	if err := s.partnerRepo.UpdateCustomer(c); err != nil {
		return nil, fmt.Errorf("更新客户失败: %w", err)
	}
	return c, nil
}

func (s *CatalogService) DeleteCustomer(id string) error {
	if _, err := s.GetCustomer(id); err != nil {
		return err
	}
	return s.partnerRepo.DeleteCustomer(id)
}

// --- 供应商 ---

type SupplierRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *CatalogService) CreateSupplier(req SupplierRequest) (*entity.Supplier, error) {
	sup := &entity.Supplier{
		ID:      uuid.New().String(),
		Code:    genCode("NCC", req.Code),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.partnerRepo.CreateSupplier(sup); err != nil {
		return nil, fmt.Errorf("创建供应商失败: %w", err)
	}
	return sup, nil
}

func (s *CatalogService) ListSuppliers() ([]entity.Supplier, error) {
	return s.partnerRepo.ListSuppliers()
}

func (s *CatalogService) UpdateSupplier(id string, req SupplierRequest) (*entity.Supplier, error) {
	sup, err := s.partnerRepo.GetSupplierByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	sup.Name = req.Name
	sup.Phone = req.Phone
	sup.Address = req.Address
	if err := s.partnerRepo.UpdateSupplier(sup); err != nil {
		return nil, fmt.Errorf("更新供应商失败: %w", err)
	}
	return sup, nil
}

func (s *CatalogService) DeleteSupplier(id string) error {
	return s.partnerRepo.DeleteSupplier(id)
}

// --- 门店 ---

type StoreRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (s *CatalogService) CreateStore(req StoreRequest) (*entity.Store, error) {
	st := &entity.Store{
		ID:      uuid.New().String(),
		Code:    genCode("CH", req.Code),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.partnerRepo.CreateStore(st); err != nil {
		return nil, fmt.Errorf("创建门店失败: %w", err)
	}
	return st, nil
}

func (s *CatalogService) ListStores() ([]entity.Store, error) {
	return s.partnerRepo.ListStores()
}

// --- 产品 ---

type ProductRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

func (s *CatalogService) CreateProduct(req ProductRequest) (*entity.Product, error) {
	p := &entity.Product{
		ID:          uuid.New().String(),
		Code:        genCode("SP", req.Code),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Status:      entity.ProductStatusActive,
	}
	if err := s.productRepo.Create(p); err != nil {
		return nil, fmt.Errorf("创建产品失败: %w", err)
	}
	return p, nil
}

func (s *CatalogService) GetProduct(id string) (*entity.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) ListProducts(params repository.ProductListParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(params)
}

func (s *CatalogService) UpdateProduct(id string, req ProductRequest) (*entity.Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Price = req.Price
	p.Description = req.Description
	if req.Status != "" {
		p.Status = req.Status
	}
	if err := s.productRepo.Update(p); err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(id string) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
