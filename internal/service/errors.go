package service

import "errors"

// 业务错误，handler 层通过 errors.Is 映射为 HTTP 状态码
var (
	ErrOrderNotFound    = errors.New("订单不存在")
	ErrProcessNotFound  = errors.New("工序不存在")
	ErrMaterialNotFound = errors.New("物料不存在")
	ErrProductNotFound  = errors.New("产品不存在")
	ErrCustomerNotFound = errors.New("客户不存在")
	ErrSupplierNotFound = errors.New("供应商不存在")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrDocumentNotFound = errors.New("单据不存在")

	// ErrInvalidStatus 目标状态不在允许清单内
	ErrInvalidStatus = errors.New("状态不合法")
	// ErrOutOfOrderTransition 上一道工序未完成就开工
	ErrOutOfOrderTransition = errors.New("上一道工序尚未完成")
	// ErrEmptyOrderItems 空明细的物料检查没有意义
	ErrEmptyOrderItems = errors.New("订单没有产品明细")
	// ErrInsufficientStock 提交时复核发现库存不足，整单回滚
	ErrInsufficientStock = errors.New("库存不足")
	// ErrOrderNotDeletable 仅待确认订单允许删除
	ErrOrderNotDeletable = errors.New("只有待确认状态的订单可以删除")

	ErrInvalidCredentials = errors.New("用户名或密码不正确")
	ErrInvalidToken       = errors.New("令牌无效或已过期")
)
