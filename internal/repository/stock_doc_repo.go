package repository

import (
	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

// StockDocRepository 出入库单据
type StockDocRepository struct {
	db *gorm.DB
}

func NewStockDocRepository(db *gorm.DB) *StockDocRepository {
	return &StockDocRepository{db: db}
}

func (r *StockDocRepository) ListMaterialExports(page, size int) ([]entity.MaterialExport, int64, error) {
	query := r.db.Model(&entity.MaterialExport{})
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var docs []entity.MaterialExport
	err := query.Preload("Order").Preload("Items").Preload("Items.Material").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&docs).Error
	return docs, total, err
}

func (r *StockDocRepository) ListMaterialImports(page, size int) ([]entity.MaterialImport, int64, error) {
	query := r.db.Model(&entity.MaterialImport{})
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var docs []entity.MaterialImport
	err := query.Preload("Supplier").Preload("Items").Preload("Items.Material").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&docs).Error
	return docs, total, err
}

func (r *StockDocRepository) ListProductExports(page, size int) ([]entity.ProductExport, int64, error) {
	query := r.db.Model(&entity.ProductExport{})
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var docs []entity.ProductExport
	err := query.Preload("Order").Preload("Store").Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&docs).Error
	return docs, total, err
}

func (r *StockDocRepository) GetMaterialExportByID(id string) (*entity.MaterialExport, error) {
	var doc entity.MaterialExport
	err := r.db.Preload("Order").Preload("Items").Preload("Items.Material").
		Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DB 返回底层db用于事务
func (r *StockDocRepository) DB() *gorm.DB {
	return r.db
}
