package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bn4g2003/garment-factory/internal/entity"
	"github.com/bn4g2003/garment-factory/internal/repository"
	"gorm.io/gorm"
)

type ProductionService struct {
	orderRepo *repository.OrderRepository
}

func NewProductionService(orderRepo *repository.OrderRepository) *ProductionService {
	return &ProductionService{orderRepo: orderRepo}
}

// ListBoard 生产看板：history=false 返回进行中订单，true 返回历史
func (s *ProductionService) ListBoard(history bool) ([]entity.Order, error) {
	return s.orderRepo.ListProductionOrders(history)
}

func (s *ProductionService) getProcess(id string) (*entity.ProductionProcess, error) {
	proc, err := s.orderRepo.GetProcessByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessNotFound
		}
		return nil, err
	}
	return proc, nil
}

// Start 开工。服务端强制工序顺序：CUT→SEW→FINISH→QC，
// 前一道未完成时拒绝（页面上原本只做了前端提示，这里收紧为硬约束）。
func (s *ProductionService) Start(processID, userID string) (*entity.ProductionProcess, error) {
	proc, err := s.getProcess(processID)
	if err != nil {
		return nil, err
	}

	idx := entity.ProcessOrder(proc.ProcessCode)
	if idx > 0 {
		siblings, err := s.orderRepo.ListProcessesByOrder(proc.OrderID)
		if err != nil {
			return nil, fmt.Errorf("查询同单工序失败: %w", err)
		}
		prevCode := entity.ProcessStages[idx-1].Code
		for _, sib := range siblings {
			if sib.ProcessCode == prevCode && sib.Status != entity.ProcessStatusCompleted {
				return nil, fmt.Errorf("%w: %s 未完成，不能开始 %s",
					ErrOutOfOrderTransition, sib.ProcessName, proc.ProcessName)
			}
		}
	}

	now := time.Now()
	proc.Status = entity.ProcessStatusInProgress
	proc.StartTime = &now
	proc.AssignedTo = &userID
	if err := s.orderRepo.UpdateProcess(proc); err != nil {
		return nil, fmt.Errorf("更新工序失败: %w", err)
	}
	return proc, nil
}

// Complete 完工。若同单四道工序全部完成，订单转 in_production
// （含义为「工序全部完成，待成品入库」），并返回 orderCompleted 供前端提示。
func (s *ProductionService) Complete(processID string) (*entity.ProductionProcess, bool, error) {
	proc, err := s.getProcess(processID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	proc.Status = entity.ProcessStatusCompleted
	proc.EndTime = &now
	if err := s.orderRepo.UpdateProcess(proc); err != nil {
		return nil, false, fmt.Errorf("更新工序失败: %w", err)
	}

	siblings, err := s.orderRepo.ListProcessesByOrder(proc.OrderID)
	if err != nil {
		return nil, false, fmt.Errorf("查询同单工序失败: %w", err)
	}
	allCompleted := true
	for _, sib := range siblings {
		if sib.Status != entity.ProcessStatusCompleted {
			allCompleted = false
			break
		}
	}

	if allCompleted {
		if _, err := s.orderRepo.UpdateStatus(proc.OrderID, entity.OrderStatusInProduction); err != nil {
			return nil, false, fmt.Errorf("更新订单状态失败: %w", err)
		}
	}
	return proc, allCompleted, nil
}
