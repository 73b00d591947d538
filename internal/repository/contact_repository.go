package repository

import (
	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系留言数据访问接口（只写入、不修改）
type ContactRepository interface {
	Create(message *models.ContactMessage) error
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建留言仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create 保存留言
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}
