package handler

import (
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// MaterialHandler 物料：档案、定额、充足性检查、出入库
type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

func (h *MaterialHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.List(repository.MaterialListParams{
		Keyword:  c.Query("keyword"),
		Status:   c.Query("status"),
		LowStock: c.Query("low_stock") == "true",
		Page:     page,
		Size:     pageSize,
	})
	if err != nil {
		InternalError(c, "获取物料列表失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	m, err := h.svc.Create(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, m)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	m, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, m)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// --- 物料定额 ---

func (h *MaterialHandler) ListStandards(c *gin.Context) {
	standards, err := h.svc.ListStandards(c.Query("product_id"))
	if err != nil {
		InternalError(c, "获取物料定额失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": standards})
}

func (h *MaterialHandler) CreateStandard(c *gin.Context) {
	var req service.CreateStandardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	std, err := h.svc.CreateStandard(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, std)
}

func (h *MaterialHandler) DeleteStandard(c *gin.Context) {
	if err := h.svc.DeleteStandard(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// --- 充足性检查 ---

type checkSufficiencyRequest struct {
	Lines []service.SufficiencyLine `json:"lines" binding:"required,dive"`
}

// CheckSufficiency 按产品明细检查物料是否够用
func (h *MaterialHandler) CheckSufficiency(c *gin.Context) {
	var req checkSufficiencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	report, err := h.svc.CheckSufficiency(req.Lines)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, report)
}

// CheckSufficiencyForOrder 按订单检查物料是否够用
func (h *MaterialHandler) CheckSufficiencyForOrder(c *gin.Context) {
	report, err := h.svc.CheckSufficiencyForOrder(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, report)
}

// --- 出入库 ---

// ConfirmExport 确认原料出库
func (h *MaterialHandler) ConfirmExport(c *gin.Context) {
	var req service.ConfirmExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	doc, err := h.svc.ConfirmExport(req, GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, doc)
}

func (h *MaterialHandler) ListExports(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.ListExports(page, pageSize)
	if err != nil {
		InternalError(c, "获取出库单列表失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *MaterialHandler) GetExport(c *gin.Context) {
	doc, err := h.svc.GetExportByID(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, doc)
}

// CreateImport 原料入库
func (h *MaterialHandler) CreateImport(c *gin.Context) {
	var req service.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	doc, err := h.svc.CreateImport(req, GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, doc)
}

func (h *MaterialHandler) ListImports(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.ListImports(page, pageSize)
	if err != nil {
		InternalError(c, "获取入库单列表失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}
