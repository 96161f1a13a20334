package repository

import (
	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var m entity.Material
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Material{}).Error
}

type MaterialListParams struct {
	Keyword  string
	Status   string
	LowStock bool
	Page     int
	Size     int
}

func (r *MaterialRepository) List(params MaterialListParams) ([]entity.Material, int64, error) {
	query := r.db.Model(&entity.Material{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", kw, kw)
	}
	if params.LowStock {
		query = query.Where("current_stock <= min_stock AND min_stock > 0")
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var items []entity.Material
	err := query.Preload("Supplier").Order("code").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&items).Error
	return items, total, err
}

// DecrementStock 条件扣减库存：库存不足时不更新任何行。
// 扣减量在提交时刻计算，避免报表与确认之间的读写竞争。
func (r *MaterialRepository) DecrementStock(tx *gorm.DB, materialID string, qty float64) (int64, error) {
	res := tx.Model(&entity.Material{}).
		Where("id = ? AND current_stock >= ?", materialID, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	return res.RowsAffected, res.Error
}

// IncrementStock 入库加量
func (r *MaterialRepository) IncrementStock(tx *gorm.DB, materialID string, qty float64) error {
	return tx.Model(&entity.Material{}).
		Where("id = ?", materialID).
		Update("current_stock", gorm.Expr("current_stock + ?", qty)).Error
}

// --- 物料定额（BOM） ---

// GetStandardsByProduct 获取某产品的全部物料定额
func (r *MaterialRepository) GetStandardsByProduct(productID string) ([]entity.MaterialStandard, error) {
	var standards []entity.MaterialStandard
	err := r.db.Preload("Material").
		Where("product_id = ?", productID).
		Find(&standards).Error
	return standards, err
}

func (r *MaterialRepository) CreateStandard(s *entity.MaterialStandard) error {
	return r.db.Create(s).Error
}

func (r *MaterialRepository) DeleteStandard(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.MaterialStandard{}).Error
}

// DB 返回底层db用于事务
func (r *MaterialRepository) DB() *gorm.DB {
	return r.db
}
