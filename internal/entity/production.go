package entity

import (
	"time"
)

// ProcessCode 四道固定工序，按 CUT→SEW→FINISH→QC 顺序执行
const (
	ProcessCodeCut    = "CUT"
	ProcessCodeSew    = "SEW"
	ProcessCodeFinish = "FINISH"
	ProcessCodeQC     = "QC"
)

// ProcessStatus 工序状态
const (
	ProcessStatusPending    = "pending"
	ProcessStatusInProgress = "in_progress"
	ProcessStatusCompleted  = "completed"
)

// ProcessStage 工序定义
type ProcessStage struct {
	Code string
	Name string
}

// ProcessStages 订单创建时生成的工序模板，顺序即执行顺序
var ProcessStages = []ProcessStage{
	{Code: ProcessCodeCut, Name: "裁剪"},
	{Code: ProcessCodeSew, Name: "缝制"},
	{Code: ProcessCodeFinish, Name: "后整"},
	{Code: ProcessCodeQC, Name: "质检"},
}

// ProcessOrder 返回工序在固定顺序中的下标，未知编码返回 -1
func ProcessOrder(code string) int {
	for i, s := range ProcessStages {
		if s.Code == code {
			return i
		}
	}
	return -1
}

// ProductionProcess 生产工序，随订单一次性创建四条
type ProductionProcess struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID     string     `json:"order_id" gorm:"type:uuid;not null;index"`
	ProcessCode string     `json:"process_code" gorm:"size:16;not null"`
	ProcessName string     `json:"process_name" gorm:"size:32;not null"`
	Status      string     `json:"status" gorm:"size:20;not null;default:pending"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	AssignedTo  *string    `json:"assigned_to" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`

	Order *Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
}

func (ProductionProcess) TableName() string {
	return "production_process"
}
