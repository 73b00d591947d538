package service

import (
	"errors"
	"strings"

	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/queue"
)

// dispatchOrderStatusEmail 队列可用时异步投递状态邮件，否则同步发送
func (s *OrderService) dispatchOrderStatusEmail(order *models.Order) {
	if order == nil || order.ID == 0 {
		return
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  order.Status,
		})
		if err == nil {
			return
		}
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
	if err := s.deliverOrderStatusEmail(order, order.Status); err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) {
			logger.Debugw("order_status_email_skipped_email_disabled", "order_id", order.ID)
			return
		}
		logger.Warnw("order_status_email_send_failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
}

// SendOrderStatusEmail 发送订单状态邮件（供异步任务调用）
func (s *OrderService) SendOrderStatusEmail(orderID uint, status string) error {
	order, err := s.getOrder(orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			logger.Debugw("order_status_email_skip_order_not_found", "order_id", orderID)
			return nil
		}
		return err
	}
	if status = normalizeOrderStatus(status); status == "" {
		status = order.Status
	}
	return s.deliverOrderStatusEmail(order, status)
}

func (s *OrderService) deliverOrderStatusEmail(order *models.Order, status string) error {
	if s.notifier == nil || s.userRepo == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("order_status_email_skip_empty_receiver", "order_id", order.ID)
		return nil
	}
	snapshot := *order
	snapshot.Status = status
	return s.notifier.SendOrderStatusUpdate(user.Email, &snapshot)
}
