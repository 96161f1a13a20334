package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialService struct {
	materialRepo *repository.MaterialRepository
	orderRepo    *repository.OrderRepository
	stockRepo    *repository.StockDocRepository
}

func NewMaterialService(materialRepo *repository.MaterialRepository, orderRepo *repository.OrderRepository, stockRepo *repository.StockDocRepository) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		orderRepo:    orderRepo,
		stockRepo:    stockRepo,
	}
}

// --- 物料档案 ---

type CreateMaterialRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock" binding:"gte=0"`
	MinStock     float64 `json:"min_stock" binding:"gte=0"`
	Price        float64 `json:"price" binding:"gte=0"`
	SupplierID   *string `json:"supplier_id"`
}

func (s *MaterialService) Create(req CreateMaterialRequest) (*entity.Material, error) {
	m := &entity.Material{
		ID:           uuid.New().String(),
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Price:        req.Price,
		SupplierID:   req.SupplierID,
		Status:       entity.MaterialStatusActive,
	}
	if m.Unit == "" {
		m.Unit = "pcs"
	}
	if err := s.materialRepo.Create(m); err != nil {
		return nil, fmt.Errorf("创建物料失败: %w", err)
	}
	return m, nil
}

func (s *MaterialService) GetByID(id string) (*entity.Material, error) {
	m, err := s.materialRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MaterialService) List(params repository.MaterialListParams) ([]entity.Material, int64, error) {
	return s.materialRepo.List(params)
}

type UpdateMaterialRequest struct {
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit"`
	MinStock   float64 `json:"min_stock" binding:"gte=0"`
	Price      float64 `json:"price" binding:"gte=0"`
	SupplierID *string `json:"supplier_id"`
	Status     string  `json:"status"`
}

// Update 不允许直接改 current_stock，库存只在出入库事务内变更
func (s *MaterialService) Update(id string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	m.Name = req.Name
	if req.Unit != "" {
		m.Unit = req.Unit
	}
	m.MinStock = req.MinStock
	m.Price = req.Price
	m.SupplierID = req.SupplierID
	if req.Status != "" {
		m.Status = req.Status
	}
	if err := s.materialRepo.Update(m); err != nil {
		return nil, fmt.Errorf("更新物料失败: %w", err)
	}
	return m, nil
}

func (s *MaterialService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.materialRepo.Delete(id)
}

// --- 物料定额 ---

type CreateStandardRequest struct {
	ProductID  string  `json:"product_id" binding:"required"`
	MaterialID string  `json:"material_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	Unit       string  `json:"unit"`
}

func (s *MaterialService) CreateStandard(req CreateStandardRequest) (*entity.MaterialStandard, error) {
	if _, err := s.materialRepo.GetByID(req.MaterialID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, req.MaterialID)
	}
	std := &entity.MaterialStandard{
		ID:         uuid.New().String(),
		ProductID:  req.ProductID,
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
	}
	if std.Unit == "" {
		std.Unit = "pcs"
	}
	if err := s.materialRepo.CreateStandard(std); err != nil {
		return nil, fmt.Errorf("创建物料定额失败: %w", err)
	}
	return std, nil
}

func (s *MaterialService) ListStandards(productID string) ([]entity.MaterialStandard, error) {
	return s.materialRepo.GetStandardsByProduct(productID)
}

func (s *MaterialService) DeleteStandard(id string) error {
	return s.materialRepo.DeleteStandard(id)
}

// --- 物料充足性检查 ---

// SufficiencyLine 检查输入：产品与数量
type SufficiencyLine struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// MaterialRequirement 单个物料的需求与可用量对比
type MaterialRequirement struct {
	MaterialID   string  `json:"material_id"`
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	Unit         string  `json:"unit"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Shortage     float64 `json:"shortage"`
	UnitPrice    float64 `json:"unit_price"`
	IsSufficient bool    `json:"is_sufficient"`
}

// SufficiencyReport 检查结果
type SufficiencyReport struct {
	AllSufficient bool                  `json:"all_sufficient"`
	Requirements  []MaterialRequirement `json:"requirements"`
}

// CheckSufficiency 物料充足性检查（纯读，可重复调用）：
// 按明细逐行展开定额，同一物料跨产品累加需求，
// shortage = max(0, required - available)。没有定额的产品不产生需求行。
func (s *MaterialService) CheckSufficiency(lines []SufficiencyLine) (*SufficiencyReport, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrderItems
	}

	// 保持物料首次出现的顺序，报表可读性依赖它
	index := make(map[string]int)
	var reqs []MaterialRequirement

	for _, line := range lines {
		standards, err := s.materialRepo.GetStandardsByProduct(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("查询物料定额失败: %w", err)
		}
		for _, std := range standards {
			need := std.Quantity * float64(line.Quantity)
			if i, ok := index[std.MaterialID]; ok {
				reqs[i].Required += need
				continue
			}
			mat := std.Material
			if mat == nil {
				m, err := s.materialRepo.GetByID(std.MaterialID)
				if err != nil {
					return nil, fmt.Errorf("查询物料失败: %w", err)
				}
				mat = m
			}
			index[std.MaterialID] = len(reqs)
			reqs = append(reqs, MaterialRequirement{
				MaterialID:   std.MaterialID,
				MaterialCode: mat.Code,
				MaterialName: mat.Name,
				Unit:         std.Unit,
				Required:     need,
				Available:    mat.CurrentStock,
				UnitPrice:    mat.Price,
			})
		}
	}

	report := &SufficiencyReport{AllSufficient: true, Requirements: reqs}
	for i := range report.Requirements {
		r := &report.Requirements[i]
		r.IsSufficient = r.Available >= r.Required
		if r.Required > r.Available {
			r.Shortage = r.Required - r.Available
		}
		if !r.IsSufficient {
			report.AllSufficient = false
		}
	}
	return report, nil
}

// CheckSufficiencyForOrder 按订单明细做充足性检查
func (s *MaterialService) CheckSufficiencyForOrder(orderID string) (*SufficiencyReport, error) {
	items, err := s.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}
	lines := make([]SufficiencyLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, SufficiencyLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return s.CheckSufficiency(lines)
}

// --- 原料出库（领料确认） ---

// ExportLine 确认出库的物料行。数量允许与检查结果不同，
// 仓库可按实际领用量覆盖；单价不传时取物料档案价。
type ExportLine struct {
	MaterialID string  `json:"material_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

type ConfirmExportRequest struct {
	OrderID string       `json:"order_id" binding:"required"`
	Lines   []ExportLine `json:"lines" binding:"required,min=1,dive"`
}

// ConfirmExport 确认原料出库：单据、明细、库存扣减与订单状态在同一事务内完成。
// 扣减用条件更新在提交时刻复核库存，任何一行不足则整单回滚，
// 库存与订单状态均不变。成功后订单转 confirmed。
func (s *MaterialService) ConfirmExport(req ConfirmExportRequest, userID string) (*entity.MaterialExport, error) {
	if _, err := s.orderRepo.GetByID(req.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	doc := &entity.MaterialExport{
		ID:         uuid.New().String(),
		ExportCode: fmt.Sprintf("XK%d", time.Now().UnixMilli()),
		OrderID:    &req.OrderID,
		ExportType: "production",
		ExportedBy: userID,
		ExportDate: time.Now(),
		Status:     entity.StockDocStatusCompleted,
	}

	err := s.materialRepo.DB().Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range req.Lines {
			var m entity.Material
			if err := tx.Where("id = ?", line.MaterialID).First(&m).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrMaterialNotFound, line.MaterialID)
				}
				return err
			}

			rows, err := s.materialRepo.DecrementStock(tx, line.MaterialID, line.Quantity)
			if err != nil {
				return fmt.Errorf("扣减库存失败: %w", err)
			}
			if rows == 0 {
				return fmt.Errorf("%w: %s 需求 %.4f 库存不足", ErrInsufficientStock, m.Name, line.Quantity)
			}

			price := line.UnitPrice
			if price == 0 {
				price = m.Price
			}
			total += line.Quantity * price
			doc.Items = append(doc.Items, entity.MaterialExportItem{
				ID:               uuid.New().String(),
				MaterialExportID: doc.ID,
				MaterialID:       line.MaterialID,
				Quantity:         line.Quantity,
				UnitPrice:        price,
			})
		}
		doc.TotalAmount = total

		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("创建出库单失败: %w", err)
		}
		return tx.Model(&entity.Order{}).
			Where("id = ?", req.OrderID).
			Update("status", entity.OrderStatusConfirmed).Error
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// --- 原料入库 ---

type ImportLine struct {
	MaterialID string  `json:"material_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

type CreateImportRequest struct {
	SupplierID *string      `json:"supplier_id"`
	ImportType string       `json:"import_type"`
	Lines      []ImportLine `json:"lines" binding:"required,min=1,dive"`
}

// CreateImport 原料入库：单据与库存加量同一事务
func (s *MaterialService) CreateImport(req CreateImportRequest, userID string) (*entity.MaterialImport, error) {
	doc := &entity.MaterialImport{
		ID:         uuid.New().String(),
		ImportCode: fmt.Sprintf("NK%d", time.Now().UnixMilli()),
		SupplierID: req.SupplierID,
		ImportType: req.ImportType,
		ImportedBy: userID,
		ImportDate: time.Now(),
		Status:     entity.StockDocStatusCompleted,
	}

	err := s.materialRepo.DB().Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range req.Lines {
			if err := tx.Where("id = ?", line.MaterialID).First(&entity.Material{}).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrMaterialNotFound, line.MaterialID)
				}
				return err
			}
			if err := s.materialRepo.IncrementStock(tx, line.MaterialID, line.Quantity); err != nil {
				return fmt.Errorf("入库加量失败: %w", err)
			}
			total += line.Quantity * line.UnitPrice
			doc.Items = append(doc.Items, entity.MaterialImportItem{
				ID:               uuid.New().String(),
				MaterialImportID: doc.ID,
				MaterialID:       line.MaterialID,
				Quantity:         line.Quantity,
				UnitPrice:        line.UnitPrice,
			})
		}
		doc.TotalAmount = total
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("创建入库单失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// --- 单据查询 ---

func (s *MaterialService) ListExports(page, size int) ([]entity.MaterialExport, int64, error) {
	return s.stockRepo.ListMaterialExports(page, size)
}

func (s *MaterialService) GetExportByID(id string) (*entity.MaterialExport, error) {
	doc, err := s.stockRepo.GetMaterialExportByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *MaterialService) ListImports(page, size int) ([]entity.MaterialImport, int64, error) {
	return s.stockRepo.ListMaterialImports(page, size)
}
