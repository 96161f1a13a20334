package repository

import (
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"gorm.io/gorm"
)

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) Create(tx *entity.Transaction) error {
	return r.db.Create(tx).Error
}

type TransactionListParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	StoreID   string
	Limit     int
}

func (r *FinanceRepository) List(params TransactionListParams) ([]entity.Transaction, error) {
	query := r.db.Model(&entity.Transaction{}).
		Where("status = ?", entity.TxStatusCompleted)
	if params.StartDate != nil && params.EndDate != nil {
		query = query.Where("transaction_date BETWEEN ? AND ?", params.StartDate, params.EndDate)
	}
	if params.Type != "" {
		query = query.Where("transaction_type = ?", params.Type)
	}
	if params.StoreID != "" {
		query = query.Where("store_id = ?", params.StoreID)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	var txs []entity.Transaction
	err := query.Preload("Store").
		Order("transaction_date DESC").Limit(limit).
		Find(&txs).Error
	return txs, err
}

// TransactionSummary 收支汇总
type TransactionSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetProfit    float64 `json:"net_profit"`
	IncomeCount  int64   `json:"income_count"`
	ExpenseCount int64   `json:"expense_count"`
}

func (r *FinanceRepository) Summary(start, end *time.Time) (*TransactionSummary, error) {
	var s TransactionSummary
	query := r.db.Model(&entity.Transaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'chi' THEN amount ELSE 0 END), 0) AS total_expense,
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE -amount END), 0) AS net_profit,
			COUNT(CASE WHEN transaction_type = 'thu' THEN 1 END) AS income_count,
			COUNT(CASE WHEN transaction_type = 'chi' THEN 1 END) AS expense_count`).
		Where("status = ?", entity.TxStatusCompleted)
	if start != nil && end != nil {
		query = query.Where("transaction_date BETWEEN ? AND ?", start, end)
	}
	err := query.Scan(&s).Error
	return &s, err
}

// StoreProfit 门店收支
type StoreProfit struct {
	StoreCode string  `json:"store_code"`
	StoreName string  `json:"store_name"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Profit    float64 `json:"profit"`
}

func (r *FinanceRepository) ProfitByStore() ([]StoreProfit, error) {
	var rows []StoreProfit
	err := r.db.Raw(`
		SELECT s.code AS store_code, s.name AS store_name,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'thu' THEN t.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'chi' THEN t.amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN t.transaction_type = 'thu' THEN t.amount ELSE -t.amount END), 0) AS profit
		FROM stores s
		LEFT JOIN transactions t ON s.id = t.store_id AND t.status = 'completed'
		GROUP BY s.id, s.code, s.name
		ORDER BY profit DESC`).Scan(&rows).Error
	return rows, err
}

// FactoryProfit 工厂账（store_id 为空）的收支
func (r *FinanceRepository) FactoryProfit() (*StoreProfit, error) {
	var row StoreProfit
	err := r.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transaction_type = 'chi' THEN amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE -amount END), 0) AS profit
		FROM transactions
		WHERE status = 'completed' AND store_id IS NULL`).Scan(&row).Error
	return &row, err
}

// DailyProfit 按日收支（近30天）
type DailyProfit struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

func (r *FinanceRepository) DailyProfits(days int) ([]DailyProfit, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	var rows []DailyProfit
	err := r.db.Raw(`
		SELECT to_char(transaction_date, 'YYYY-MM-DD') AS date,
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transaction_type = 'chi' THEN amount ELSE 0 END), 0) AS expense,
			COALESCE(SUM(CASE WHEN transaction_type = 'thu' THEN amount ELSE -amount END), 0) AS profit
		FROM transactions
		WHERE status = 'completed' AND transaction_date >= ?
		GROUP BY date
		ORDER BY date DESC`, since).Scan(&rows).Error
	return rows, err
}
