package entity

import (
	"time"
)

// 出入库单据状态
const (
	StockDocStatusCompleted = "completed"
)

// MaterialExport 原料出库单（不可变），创建时在同一事务内扣减库存
type MaterialExport struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	ExportCode  string    `json:"export_code" gorm:"size:50;not null;uniqueIndex"`
	OrderID     *string   `json:"order_id" gorm:"type:uuid;index"`
	ExportType  string    `json:"export_type" gorm:"size:32"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(14,2);not null;default:0"`
	ExportedBy  string    `json:"exported_by" gorm:"type:uuid;not null"`
	ExportDate  time.Time `json:"export_date"`
	Status      string    `json:"status" gorm:"size:20;not null;default:completed"`
	CreatedAt   time.Time `json:"created_at"`

	Order *Order               `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Items []MaterialExportItem `json:"items,omitempty" gorm:"foreignKey:MaterialExportID"`
}

func (MaterialExport) TableName() string {
	return "material_exports"
}

// MaterialExportItem 出库明细
type MaterialExportItem struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	MaterialExportID string    `json:"material_export_id" gorm:"type:uuid;not null;index"`
	MaterialID       string    `json:"material_id" gorm:"type:uuid;not null"`
	Quantity         float64   `json:"quantity" gorm:"type:decimal(14,4);not null"`
	UnitPrice        float64   `json:"unit_price" gorm:"type:decimal(14,2);not null"`
	CreatedAt        time.Time `json:"created_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (MaterialExportItem) TableName() string {
	return "material_export_items"
}

// MaterialImport 原料入库单
type MaterialImport struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	ImportCode  string    `json:"import_code" gorm:"size:50;not null;uniqueIndex"`
	SupplierID  *string   `json:"supplier_id" gorm:"type:uuid;index"`
	ImportType  string    `json:"import_type" gorm:"size:32"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(14,2);not null;default:0"`
	ImportedBy  string    `json:"imported_by" gorm:"type:uuid;not null"`
	ImportDate  time.Time `json:"import_date"`
	Status      string    `json:"status" gorm:"size:20;not null;default:completed"`
	CreatedAt   time.Time `json:"created_at"`

	Supplier *Supplier            `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Items    []MaterialImportItem `json:"items,omitempty" gorm:"foreignKey:MaterialImportID"`
}

func (MaterialImport) TableName() string {
	return "material_imports"
}

// MaterialImportItem 入库明细
type MaterialImportItem struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid"`
	MaterialImportID string    `json:"material_import_id" gorm:"type:uuid;not null;index"`
	MaterialID       string    `json:"material_id" gorm:"type:uuid;not null"`
	Quantity         float64   `json:"quantity" gorm:"type:decimal(14,4);not null"`
	UnitPrice        float64   `json:"unit_price" gorm:"type:decimal(14,2);not null"`
	CreatedAt        time.Time `json:"created_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (MaterialImportItem) TableName() string {
	return "material_import_items"
}

// ProductExport 成品出库单（发往门店或直接销售）
type ProductExport struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	ExportCode  string    `json:"export_code" gorm:"size:50;not null;uniqueIndex"`
	OrderID     *string   `json:"order_id" gorm:"type:uuid;index"`
	StoreID     *string   `json:"store_id" gorm:"type:uuid;index"`
	ExportType  string    `json:"export_type" gorm:"size:32"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(14,2);not null;default:0"`
	ExportedBy  string    `json:"exported_by" gorm:"type:uuid;not null"`
	ExportDate  time.Time `json:"export_date"`
	CreatedAt   time.Time `json:"created_at"`

	Order *Order              `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Store *Store              `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Items []ProductExportItem `json:"items,omitempty" gorm:"foreignKey:ProductExportID"`
}

func (ProductExport) TableName() string {
	return "product_exports"
}

// ProductExportItem 成品出库明细
type ProductExportItem struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductExportID string    `json:"product_export_id" gorm:"type:uuid;not null;index"`
	ProductID       string    `json:"product_id" gorm:"type:uuid;not null"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	UnitPrice       float64   `json:"unit_price" gorm:"type:decimal(14,2);not null"`
	CreatedAt       time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductExportItem) TableName() string {
	return "product_export_items"
}
