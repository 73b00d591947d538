package repository

import (
	"errors"
	"time"

	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByResetToken(token string, now time.Time) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateName(id uint, name string) error
	ConsumeResetToken(id uint, tokenHash string, now time.Time, passwordHash string) (bool, error)
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByResetToken 根据未过期的重置令牌获取用户
func (r *GormUserRepository) GetByResetToken(token string, now time.Time) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	var user models.User
	err := r.db.Where("reset_token = ? AND reset_token_expiry >= ?", token, now).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateName 更新用户名
func (r *GormUserRepository) UpdateName(id uint, name string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken 条件更新：令牌仍有效时写入新密码并清空令牌
// 返回 false 表示令牌已被使用或已过期。
func (r *GormUserRepository) ConsumeResetToken(id uint, tokenHash string, now time.Time, passwordHash string) (bool, error) {
	if id == 0 || tokenHash == "" {
		return false, nil
	}
	result := r.db.Model(&models.User{}).
		Where("id = ? AND reset_token = ? AND reset_token_expiry >= ?", id, tokenHash, now).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
			"token_version":      gorm.Expr("token_version + ?", 1),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
