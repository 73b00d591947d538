package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	UserID    uint      `gorm:"index;not null" json:"userId"`                       // 下单用户
	Total     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 订单总额（下单时快照）
	Status    string    `gorm:"size:32;index;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"` // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`              // 更新时间

	User          *User                `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingInfo  *ShippingInfo        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shippingInfo,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"statusHistory,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatusHistory 订单状态流水（只追加）
type OrderStatusHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"orderId"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	ChangedAt time.Time `gorm:"index;not null" json:"changedAt"`
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
