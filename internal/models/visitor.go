package models

import "time"

// Visitor 访问记录（每次请求一行，不去重）
type Visitor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	VisitorID string    `gorm:"index;size:64;not null" json:"visitorId"`
	IP        string    `gorm:"size:64" json:"ip"`
	Country   *string   `gorm:"size:8;index" json:"country"`
	Region    *string   `gorm:"size:64" json:"region"`
	City      *string   `gorm:"size:128" json:"city"`
	UserAgent string    `gorm:"size:512" json:"userAgent"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName 指定表名
func (Visitor) TableName() string {
	return "visitors"
}
