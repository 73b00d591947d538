package models

import "time"

// NewsletterSubscriber 邮件订阅
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName 指定表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// ContactMessage 联系表单留言（创建后不可修改）
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
