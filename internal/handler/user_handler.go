package handler

import (
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List()
	if err != nil {
		InternalError(c, "获取用户列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	user, err := h.svc.Create(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	user, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
