package models

import (
	"time"
)

// User 用户表
type User struct {
	ID               uint       `gorm:"primarykey" json:"id"`                           // 主键
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`     // 邮箱
	PasswordHash     string     `gorm:"not null" json:"-"`                              // 密码哈希（不返回给前端）
	Name             string     `gorm:"size:255;default:''" json:"name"`                // 用户名
	Role             string     `gorm:"size:32;not null;default:'customer'" json:"role"` // 角色
	ResetToken       *string    `gorm:"index;size:128" json:"-"`                        // 重置密码令牌
	ResetTokenExpiry *time.Time `json:"-"`                                              // 重置密码令牌过期时间
	TokenVersion     uint64     `gorm:"not null;default:0" json:"-"`                    // Token 版本（改密后旧 Token 失效）
	CreatedAt        time.Time  `gorm:"index" json:"createdAt"`                         // 创建时间
	UpdatedAt        time.Time  `json:"updatedAt"`                                      // 更新时间

	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// UserSummary 订单列表中展示的用户摘要
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
