package service

import (
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
)

type FinanceService struct {
	financeRepo *repository.FinanceRepository
}

func NewFinanceService(financeRepo *repository.FinanceRepository) *FinanceService {
	return &FinanceService{financeRepo: financeRepo}
}

type CreateTransactionRequest struct {
	TransactionType string  `json:"transaction_type" binding:"required,oneof=thu chi"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod   string  `json:"payment_method"`
	Description     string  `json:"description"`
	StoreID         *string `json:"store_id"`
	TransactionDate *string `json:"transaction_date"`
}

// Create 记一笔收支。单号前缀按类型区分：收入 THU-、支出 CHI-。
func (s *FinanceService) Create(req CreateTransactionRequest, userID string) (*entity.Transaction, error) {
	prefix := "THU-"
	if req.TransactionType == entity.TxTypeExpense {
		prefix = "CHI-"
	}

	txDate := time.Now()
	if req.TransactionDate != nil && *req.TransactionDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("交易日期格式不正确: %w", err)
		}
		txDate = parsed
	}

	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		TransactionCode: fmt.Sprintf("%s%d", prefix, time.Now().UnixMilli()),
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Description:     req.Description,
		StoreID:         req.StoreID,
		CreatedBy:       userID,
		TransactionDate: txDate,
		Status:          entity.TxStatusCompleted,
	}
	if err := s.financeRepo.Create(tx); err != nil {
		return nil, fmt.Errorf("创建收支流水失败: %w", err)
	}
	return tx, nil
}

func (s *FinanceService) List(params repository.TransactionListParams) ([]entity.Transaction, error) {
	return s.financeRepo.List(params)
}

// FinanceOverview 财务总览：汇总、门店收支、工厂账、近30天走势
type FinanceOverview struct {
	Summary       *repository.TransactionSummary `json:"summary"`
	StoreProfits  []repository.StoreProfit       `json:"store_profits"`
	FactoryProfit *repository.StoreProfit        `json:"factory_profit"`
	DailyProfits  []repository.DailyProfit       `json:"daily_profits"`
}

func (s *FinanceService) Overview(start, end *time.Time) (*FinanceOverview, error) {
	summary, err := s.financeRepo.Summary(start, end)
	if err != nil {
		return nil, fmt.Errorf("查询收支汇总失败: %w", err)
	}
	stores, err := s.financeRepo.ProfitByStore()
	if err != nil {
		return nil, fmt.Errorf("查询门店收支失败: %w", err)
	}
	factory, err := s.financeRepo.FactoryProfit()
	if err != nil {
		return nil, fmt.Errorf("查询工厂收支失败: %w", err)
	}
	daily, err := s.financeRepo.DailyProfits(30)
	if err != nil {
		return nil, fmt.Errorf("查询日收支失败: %w", err)
	}
	return &FinanceOverview{
		Summary:       summary,
		StoreProfits:  stores,
		FactoryProfit: factory,
		DailyProfits:  daily,
	}, nil
}
