package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	CreateShippingInfo(info *models.ShippingInfo) error
	GetShippingInfo(orderID uint) (*models.ShippingInfo, error)
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string, at time.Time) error
	AppendStatusHistory(orderID uint, status string, at time.Time) error
	ListStatusHistory(orderID uint) ([]models.OrderStatusHistory, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items", "ShippingInfo", "StatusHistory", "User").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Omit("Product").Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// CreateShippingInfo 写入订单收货信息
func (r *GormOrderRepository) CreateShippingInfo(info *models.ShippingInfo) error {
	return r.db.Create(info).Error
}

// GetShippingInfo 获取订单收货信息
func (r *GormOrderRepository) GetShippingInfo(orderID uint) (*models.ShippingInfo, error) {
	var info models.ShippingInfo
	if err := r.db.Where("order_id = ?", orderID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("ShippingInfo").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取指定用户的订单
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 订单列表（按创建时间倒序）
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyCreatedRange(query, "created_at", filter.CreatedFrom, filter.CreatedTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithProduct {
		query = query.Preload("Items.Product")
	} else {
		query = query.Preload("Items")
	}
	if filter.WithUser {
		query = query.Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email", "name")
		})
	}
	query = query.Preload("ShippingInfo")
	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string, at time.Time) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendStatusHistory 追加状态流水
func (r *GormOrderRepository) AppendStatusHistory(orderID uint, status string, at time.Time) error {
	return r.db.Create(&models.OrderStatusHistory{
		OrderID:   orderID,
		Status:    status,
		ChangedAt: at,
	}).Error
}

// ListStatusHistory 按时间正序获取状态流水
func (r *GormOrderRepository) ListStatusHistory(orderID uint) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	if err := r.db.Where("order_id = ?", orderID).Order("changed_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
