package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&User{},
		&Store{},
		&Customer{},
		&Supplier{},
		&Product{},
		&Material{},
		&MaterialStandard{},

		// 订单与生产
		&Order{},
		&OrderItem{},
		&ProductionProcess{},

		// 仓储单据
		&MaterialImport{},
		&MaterialImportItem{},
		&MaterialExport{},
		&MaterialExportItem{},
		&FinishedProduct{},
		&ProductExport{},
		&ProductExportItem{},

		// 财务
		&Transaction{},
	)
}
