package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 允许的订单状态集合
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 用户角色常量
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyVisitorID = "visitor_id"
)

// 访客追踪
const (
	VisitorCookieName = "visitorId"
)

// 验证码场景
const (
	CaptchaSceneSignup  = "signup"
	CaptchaSceneContact = "contact"
)

// 统计粒度
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// 通知类型
const (
	NotificationWelcome       = "welcome"
	NotificationNewsletter    = "newsletter_welcome"
	NotificationOrderConfirm  = "order_confirmation"
	NotificationOrderStatus   = "order_status"
	NotificationPasswordReset = "password_reset"
	NotificationContact       = "contact"
)

// 异步任务
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)
