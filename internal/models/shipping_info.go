package models

import (
	"time"
)

// ShippingInfo 订单收货信息（与订单一对一）
type ShippingInfo struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"uniqueIndex;not null" json:"orderId"`
	FirstName  string    `gorm:"size:128;not null" json:"firstName"`
	LastName   string    `gorm:"size:128;not null" json:"lastName"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Phone      string    `gorm:"size:64;not null" json:"phone"`
	Address1   string    `gorm:"size:255;not null" json:"address1"`
	Address2   *string   `gorm:"size:255" json:"address2"`
	City       string    `gorm:"size:128;not null" json:"city"`
	State      *string   `gorm:"size:128" json:"state"`
	PostalCode string    `gorm:"size:32;not null" json:"postalCode"`
	Country    string    `gorm:"size:64;not null" json:"country"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName 指定表名
func (ShippingInfo) TableName() string {
	return "shipping_infos"
}
