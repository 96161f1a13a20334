package handler

import (
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler 成品仓
type WarehouseHandler struct {
	svc *service.WarehouseService
}

func NewWarehouseHandler(svc *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

// ListFinished 成品库存，?store_id= 查门店，缺省查工厂仓
func (h *WarehouseHandler) ListFinished(c *gin.Context) {
	var storeID *string
	if v := c.Query("store_id"); v != "" {
		storeID = &v
	}
	items, err := h.svc.ListFinished(storeID)
	if err != nil {
		InternalError(c, "获取成品库存失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Intake 完工订单成品入库
func (h *WarehouseHandler) Intake(c *gin.Context) {
	order, err := h.svc.Intake(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

// ExportProducts 成品出库
func (h *WarehouseHandler) ExportProducts(c *gin.Context) {
	var req service.ExportProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	doc, err := h.svc.ExportProducts(req, GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, doc)
}

func (h *WarehouseHandler) ListExports(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.ListProductExports(page, pageSize)
	if err != nil {
		InternalError(c, "获取成品出库单失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}
