package worker

import (
	"context"
	"errors"

	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/provider"
	"github.com/furniture-shop/internal/queue"
	"github.com/furniture-shop/internal/service"

	"github.com/hibiken/asynq"
)

// orderStatusMailer 发送订单状态邮件
type orderStatusMailer interface {
	SendOrderStatusEmail(orderID uint, status string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	mailer orderStatusMailer
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{Container: c}
	if c != nil && c.OrderService != nil {
		consumer.mailer = c.OrderService
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.mailer == nil {
		logger.Warnw("worker_order_status_email_skip_mailer_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.mailer.SendOrderStatusEmail(payload.OrderID, payload.Status); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) {
			logger.Debugw("worker_order_status_email_skip_email_disabled", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", payload.OrderID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}
	return nil
}
