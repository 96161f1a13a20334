package service

import (
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService 报表，直接持有 db 做聚合查询
type ReportService struct {
	db          *gorm.DB
	financeRepo *repository.FinanceRepository
}

func NewReportService(db *gorm.DB, financeRepo *repository.FinanceRepository) *ReportService {
	return &ReportService{db: db, financeRepo: financeRepo}
}

// DashboardOverview 首页总览
type DashboardOverview struct {
	TotalOrders       int64   `json:"total_orders"`
	OrdersInProgress  int64   `json:"orders_in_progress"`
	OrdersCompleted   int64   `json:"orders_completed"`
	TotalRevenue      float64 `json:"total_revenue"`
	LowStockMaterials int64   `json:"low_stock_materials"`
	FinishedQuantity  int64   `json:"finished_quantity"`
}

func (s *ReportService) Overview() (*DashboardOverview, error) {
	var o DashboardOverview
	if err := s.db.Model(&entity.Order{}).Count(&o.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("统计订单失败: %w", err)
	}
	s.db.Model(&entity.Order{}).
		Where("status IN ?", []string{entity.OrderStatusConfirmed, entity.OrderStatusInProduction}).
		Count(&o.OrdersInProgress)
	s.db.Model(&entity.Order{}).
		Where("status IN ?", []string{entity.OrderStatusCompleted, entity.OrderStatusShipped}).
		Count(&o.OrdersCompleted)
	s.db.Model(&entity.Order{}).
		Where("status <> ?", entity.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&o.TotalRevenue)
	s.db.Model(&entity.Material{}).
		Where("current_stock <= min_stock AND min_stock > 0").
		Count(&o.LowStockMaterials)
	s.db.Model(&entity.FinishedProduct{}).
		Select("COALESCE(SUM(quantity), 0)").Scan(&o.FinishedQuantity)
	return &o, nil
}

// InventoryRow 库存报表行
type InventoryRow struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
	Price        float64 `json:"price"`
	StockValue   float64 `json:"stock_value"`
	LowStock     bool    `json:"low_stock"`
	StockStatus  string  `json:"stock_status"`
}

// stockStatus 库存分级：低于警戒线 low，警戒线1.5倍以内 medium，其余 good
func stockStatus(current, min float64) string {
	switch {
	case min <= 0:
		return "good"
	case current <= min:
		return "low"
	case current <= min*1.5:
		return "medium"
	default:
		return "good"
	}
}

func (s *ReportService) InventoryReport() ([]InventoryRow, error) {
	var materials []entity.Material
	if err := s.db.Order("code").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("查询物料失败: %w", err)
	}
	rows := make([]InventoryRow, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, InventoryRow{
			Code:         m.Code,
			Name:         m.Name,
			Unit:         m.Unit,
			CurrentStock: m.CurrentStock,
			MinStock:     m.MinStock,
			Price:        m.Price,
			StockValue:   m.CurrentStock * m.Price,
			LowStock:     m.MinStock > 0 && m.CurrentStock <= m.MinStock,
			StockStatus:  stockStatus(m.CurrentStock, m.MinStock),
		})
	}
	return rows, nil
}

// RevenueReport 按订单口径的收入报表
type RevenueReport struct {
	TotalRevenue float64                        `json:"total_revenue"`
	OrderCount   int64                          `json:"order_count"`
	Summary      *repository.TransactionSummary `json:"summary"`
}

func (s *ReportService) RevenueReport(start, end *time.Time) (*RevenueReport, error) {
	var r RevenueReport
	query := s.db.Model(&entity.Order{}).
		Where("status <> ?", entity.OrderStatusCancelled)
	if start != nil && end != nil {
		query = query.Where("created_at BETWEEN ? AND ?", start, end)
	}
	query.Count(&r.OrderCount)
	query.Select("COALESCE(SUM(total_amount), 0)").Scan(&r.TotalRevenue)

	summary, err := s.financeRepo.Summary(start, end)
	if err != nil {
		return nil, fmt.Errorf("查询收支汇总失败: %w", err)
	}
	r.Summary = summary
	return &r, nil
}

// ProductionReport 生产报表：各状态订单数与工序进度
type ProductionReport struct {
	ByStatus  map[string]int64 `json:"by_status"`
	ByProcess map[string]int64 `json:"by_process"`
}

func (s *ReportService) ProductionReport() (*ProductionReport, error) {
	r := &ProductionReport{
		ByStatus:  make(map[string]int64),
		ByProcess: make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var statuses []statusCount
	if err := s.db.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&statuses).Error; err != nil {
		return nil, fmt.Errorf("统计订单状态失败: %w", err)
	}
	for _, sc := range statuses {
		r.ByStatus[sc.Status] = sc.Count
	}

	type processCount struct {
		ProcessCode string
		Count       int64
	}
	var processes []processCount
	if err := s.db.Model(&entity.ProductionProcess{}).
		Where("status = ?", entity.ProcessStatusInProgress).
		Select("process_code, COUNT(*) AS count").
		Group("process_code").Scan(&processes).Error; err != nil {
		return nil, fmt.Errorf("统计工序进度失败: %w", err)
	}
	for _, pc := range processes {
		r.ByProcess[pc.ProcessCode] = pc.Count
	}
	return r, nil
}

// StoreReport 门店报表：各门店成品库存与收支
type StoreReport struct {
	StoreProfits []repository.StoreProfit `json:"store_profits"`
	Finished     []entity.FinishedProduct `json:"finished"`
}

func (s *ReportService) StoreReport() (*StoreReport, error) {
	profits, err := s.financeRepo.ProfitByStore()
	if err != nil {
		return nil, fmt.Errorf("查询门店收支失败: %w", err)
	}
	var finished []entity.FinishedProduct
	if err := s.db.Preload("Product").Preload("Store").
		Where("store_id IS NOT NULL").
		Find(&finished).Error; err != nil {
		return nil, fmt.Errorf("查询门店成品库存失败: %w", err)
	}
	return &StoreReport{StoreProfits: profits, Finished: finished}, nil
}

var inventoryExportHeaders = []string{
	"编号", "名称", "单位", "当前库存", "最低库存", "单价", "库存金额", "库存预警",
}

// ExportInventory 导出库存报表为xlsx
func (s *ReportService) ExportInventory() (*excelize.File, string, error) {
	rows, err := s.InventoryReport()
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "库存"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range inventoryExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalValue float64
	for rowIdx, r := range rows {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.MinStock)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Price)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.StockValue)
		warn := ""
		if r.LowStock {
			warn = "低于警戒线"
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), warn)
		totalValue += r.StockValue
	}

	summaryRow := len(rows) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "汇总")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("物料数: %d", len(rows)))
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), totalValue)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{12, 24, 8, 12, 12, 10, 14, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
