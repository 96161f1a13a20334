package handler

import (
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.List(repository.OrderListParams{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       pageSize,
	})
	if err != nil {
		InternalError(c, "获取订单列表失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus 直接改订单状态
func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, order)
}
