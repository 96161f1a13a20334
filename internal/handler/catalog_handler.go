package handler

import (
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler 基础档案：客户、供应商、门店、产品
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// --- 客户 ---

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers()
	if err != nil {
		InternalError(c, "获取客户列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": customers})
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, customer)
}

func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	customer, err := h.svc.CreateCustomer(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, customer)
}

func (h *CatalogHandler) UpdateCustomer(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	customer, err := h.svc.UpdateCustomer(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, customer)
}

func (h *CatalogHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// --- 供应商 ---

func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.ListSuppliers()
	if err != nil {
		InternalError(c, "获取供应商列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": suppliers})
}

func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.CreateSupplier(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, supplier)
}

func (h *CatalogHandler) UpdateSupplier(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.UpdateSupplier(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, supplier)
}

func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.DeleteSupplier(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// --- 门店 ---

func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.svc.ListStores()
	if err != nil {
		InternalError(c, "获取门店列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": stores})
}

func (h *CatalogHandler) CreateStore(c *gin.Context) {
	var req service.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	store, err := h.svc.CreateStore(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, store)
}

// --- 产品 ---

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, pageSize := GetPagination(c)
	items, total, err := h.svc.ListProducts(repository.ProductListParams{
		Keyword: c.Query("keyword"),
		Status:  c.Query("status"),
		Page:    page,
		Size:    pageSize,
	})
	if err != nil {
		InternalError(c, "获取产品列表失败: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items, Pagination: NewPagination(page, pageSize, total)})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	product, err := h.svc.CreateProduct(req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	product, err := h.svc.UpdateProduct(c.Param("id"), req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Param("id")); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
