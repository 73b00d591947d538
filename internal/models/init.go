package models

import (
	"errors"
	"strings"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminEmail = "admin@furniture.com"

// InitDefaultAdmin 初始化默认管理员账号
// 说明：已存在管理员时不做任何修改；同邮箱的普通用户会被提升为管理员。
func InitDefaultAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultAdminEmail
	}

	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if err := DB.Model(&existing).Update("role", constants.RoleAdmin).Error; err != nil {
			return err
		}
		logger.Warnw("default_admin_promoted", "email", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	usingDefault := password == ""
	if usingDefault {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "admin",
		Role:         constants.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if usingDefault {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
