package repository

import "errors"

var (
	// ErrNotFound 目标记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrProductInUse 商品已被订单引用
	ErrProductInUse = errors.New("product referenced by orders")
)
