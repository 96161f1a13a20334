package handler

import (
	"time"

	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/bn4g2003/garment-factory/internal/service"
	"github.com/gin-gonic/gin"
)

// FinanceHandler 收支流水
type FinanceHandler struct {
	svc *service.FinanceService
}

func NewFinanceHandler(svc *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// parseDateRange 解析 ?start_date=&end_date=（YYYY-MM-DD），不合法时忽略
func parseDateRange(c *gin.Context) (*time.Time, *time.Time) {
	start, err1 := time.Parse("2006-01-02", c.Query("start_date"))
	end, err2 := time.Parse("2006-01-02", c.Query("end_date"))
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	// 截止日含当天
	end = end.AddDate(0, 0, 1).Add(-time.Second)
	return &start, &end
}

func (h *FinanceHandler) List(c *gin.Context) {
	start, end := parseDateRange(c)
	txs, err := h.svc.List(repository.TransactionListParams{
		StartDate: start,
		EndDate:   end,
		Type:      c.Query("type"),
		StoreID:   c.Query("store_id"),
	})
	if err != nil {
		InternalError(c, "获取收支流水失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": txs})
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tx, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, tx)
}

func (h *FinanceHandler) Overview(c *gin.Context) {
	start, end := parseDateRange(c)
	overview, err := h.svc.Overview(start, end)
	if err != nil {
		InternalError(c, "获取财务总览失败: "+err.Error())
		return
	}
	Success(c, overview)
}
