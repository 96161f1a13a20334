package handler

import (
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler 报表
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview()
	if err != nil {
		InternalError(c, "获取总览失败: "+err.Error())
		return
	}
	Success(c, overview)
}

func (h *ReportHandler) Inventory(c *gin.Context) {
	rows, err := h.svc.InventoryReport()
	if err != nil {
		InternalError(c, "获取库存报表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": rows})
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	start, end := parseDateRange(c)
	report, err := h.svc.RevenueReport(start, end)
	if err != nil {
		InternalError(c, "获取收入报表失败: "+err.Error())
		return
	}
	Success(c, report)
}

func (h *ReportHandler) Production(c *gin.Context) {
	report, err := h.svc.ProductionReport()
	if err != nil {
		InternalError(c, "获取生产报表失败: "+err.Error())
		return
	}
	Success(c, report)
}

func (h *ReportHandler) Stores(c *gin.Context) {
	report, err := h.svc.StoreReport()
	if err != nil {
		InternalError(c, "获取门店报表失败: "+err.Error())
		return
	}
	Success(c, report)
}

// ExportInventory 下载库存报表xlsx
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	f, filename, err := h.svc.ExportInventory()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
