package repository

import (
	"errors"

	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// SubscriberRepository 邮件订阅数据访问接口
type SubscriberRepository interface {
	Create(subscriber *models.NewsletterSubscriber) error
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	List() ([]models.NewsletterSubscriber, error)
	Delete(id uint) error
}

// GormSubscriberRepository GORM 实现
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository 创建订阅仓库
func NewSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// Create 创建订阅
func (r *GormSubscriberRepository) Create(subscriber *models.NewsletterSubscriber) error {
	return r.db.Create(subscriber).Error
}

// GetByEmail 根据邮箱获取订阅
func (r *GormSubscriberRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// List 订阅列表
func (r *GormSubscriberRepository) List() ([]models.NewsletterSubscriber, error) {
	var rows []models.NewsletterSubscriber
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete 删除订阅
func (r *GormSubscriberRepository) Delete(id uint) error {
	result := r.db.Delete(&models.NewsletterSubscriber{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
