package repository

import (
	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(p *entity.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Product{}).Error
}

type ProductListParams struct {
	Keyword string
	Status  string
	Page    int
	Size    int
}

func (r *ProductRepository) List(params ProductListParams) ([]entity.Product, int64, error) {
	query := r.db.Model(&entity.Product{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var items []entity.Product
	err := query.Order("code").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&items).Error
	return items, total, err
}

// --- 成品库存 ---

// GetFinishedStock 获取某产品在某库位的成品库存，storeID 为空查工厂仓
func (r *ProductRepository) GetFinishedStock(productID string, storeID *string) (*entity.FinishedProduct, error) {
	query := r.db.Where("product_id = ?", productID)
	if storeID == nil {
		query = query.Where("store_id IS NULL")
	} else {
		query = query.Where("store_id = ?", *storeID)
	}
	var fp entity.FinishedProduct
	if err := query.First(&fp).Error; err != nil {
		return nil, err
	}
	return &fp, nil
}

// ListFinishedProducts 成品库存列表，storeID 为空查工厂仓
func (r *ProductRepository) ListFinishedProducts(storeID *string) ([]entity.FinishedProduct, error) {
	query := r.db.Preload("Product").Preload("Store")
	if storeID == nil {
		query = query.Where("store_id IS NULL")
	} else {
		query = query.Where("store_id = ?", *storeID)
	}
	var items []entity.FinishedProduct
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// DecrementFinishedStock 条件扣减成品库存，库存不足时不更新
func (r *ProductRepository) DecrementFinishedStock(tx *gorm.DB, productID string, storeID *string, qty int) (int64, error) {
	query := tx.Model(&entity.FinishedProduct{}).
		Where("product_id = ? AND quantity >= ?", productID, qty)
	if storeID == nil {
		query = query.Where("store_id IS NULL")
	} else {
		query = query.Where("store_id = ?", *storeID)
	}
	res := query.Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

// DB 返回底层db用于事务
func (r *ProductRepository) DB() *gorm.DB {
	return r.db
}
