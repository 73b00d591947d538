package repository

import (
	"time"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// applyCreatedRange 以参数绑定方式追加 created_at 区间条件（含起点，不含终点）。
func applyCreatedRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if query == nil {
		return query
	}
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" < ?", *to)
	}
	return query
}
