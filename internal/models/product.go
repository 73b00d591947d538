package models

import (
	"time"
)

// Product 商品表
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Title       string    `gorm:"size:255;not null" json:"title"`                     // 标题
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	ImageURL    string    `gorm:"size:1024" json:"imageUrl"`                          // 主图
	Category    string    `gorm:"size:128;index" json:"category"`                     // 分类名称
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Archived    bool      `gorm:"not null;default:false;index" json:"archived"`       // 是否归档（软下架）
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                             // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                          // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
