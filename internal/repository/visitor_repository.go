package repository

import (
	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// VisitorRepository 访客记录数据访问接口
type VisitorRepository interface {
	Create(visitor *models.Visitor) error
	List(filter VisitorListFilter) ([]models.Visitor, int64, error)
}

// GormVisitorRepository GORM 实现
type GormVisitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository 创建访客仓库
func NewVisitorRepository(db *gorm.DB) *GormVisitorRepository {
	return &GormVisitorRepository{db: db}
}

// Create 写入访问记录
func (r *GormVisitorRepository) Create(visitor *models.Visitor) error {
	return r.db.Create(visitor).Error
}

// List 按时间倒序分页查询访问记录
func (r *GormVisitorRepository) List(filter VisitorListFilter) ([]models.Visitor, int64, error) {
	query := applyCreatedRange(r.db.Model(&models.Visitor{}), "created_at", filter.CreatedFrom, filter.CreatedTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Visitor
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
