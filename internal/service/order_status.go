package service

import (
	"strings"

	"github.com/furniture-shop/internal/constants"
)

// orderStatusTransitions 严格模式下允许的状态流转
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusPaid, constants.OrderStatusCancelled},
	constants.OrderStatusPaid:      {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

func normalizeOrderStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isOrderStatusValid(status string) bool {
	for _, candidate := range constants.OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// canTransitionOrderStatus 判断状态能否从 from 变为 to
// 非严格模式下任意合法状态之间均可切换。
func canTransitionOrderStatus(from, to string, strict bool) bool {
	if !isOrderStatusValid(to) {
		return false
	}
	if !strict {
		return true
	}
	for _, next := range orderStatusTransitions[normalizeOrderStatus(from)] {
		if next == to {
			return true
		}
	}
	return false
}
