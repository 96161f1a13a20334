package handler

import (
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// ProductionHandler 生产工序
type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Board 生产看板，?history=true 查历史
func (h *ProductionHandler) Board(c *gin.Context) {
	orders, err := h.svc.ListBoard(c.Query("history") == "true")
	if err != nil {
		InternalError(c, "获取生产看板失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": orders})
}

// Start 工序开工
func (h *ProductionHandler) Start(c *gin.Context) {
	proc, err := h.svc.Start(c.Param("id"), GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, proc)
}

// Complete 工序完工，返回 order_completed 标记最后一道是否收尾
func (h *ProductionHandler) Complete(c *gin.Context) {
	proc, orderCompleted, err := h.svc.Complete(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{
		"process":         proc,
		"order_completed": orderCompleted,
	})
}
