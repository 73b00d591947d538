package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":                     "Bad request",
		"error.unauthorized":                    "Unauthorized",
		"error.forbidden":                       "Forbidden",
		"error.not_found":                       "Not found",
		"error.internal":                        "Internal server error",
		"error.too_many_requests":               "Too many requests, please try again later",
		"error.auth_header_missing":             "Authorization header is missing",
		"error.auth_header_invalid":             "Authorization header is invalid",
		"error.token_invalid":                   "Invalid or expired token",
		"error.token_revoked":                   "Session has been revoked, please log in again",
		"error.invalid_credentials":             "Invalid credentials",
		"error.email_exists":                    "Email already in use",
		"error.email_not_found":                 "Email not found",
		"error.email_invalid":                   "Invalid email address",
		"error.password_invalid":                "Password must be at least 6 characters",
		"error.reset_token_invalid":             "Invalid or expired token",
		"error.user_not_found":                  "User not found",
		"error.old_password_incorrect":          "Old password incorrect",
		"error.username_invalid":                "Username is invalid",
		"error.product_not_found":               "Product not found",
		"error.product_invalid":                 "Product title is required and price must not be negative",
		"error.product_in_use":                  "Product is referenced by orders, archive it instead",
		"error.order_not_found":                 "Order not found",
		"error.order_items_empty":               "Order must contain at least one item",
		"error.order_item_invalid":              "Order item is invalid",
		"error.shipping_info_invalid":           "Shipping information is incomplete",
		"error.shipping_info_exists":            "Shipping information already exists for this order",
		"error.order_status_transition_invalid": "Order status transition is not allowed",
		"error.subscriber_email_required":       "Email is required",
		"error.subscriber_exists":               "Email already subscribed",
		"error.subscriber_not_found":            "Subscriber not found",
		"error.contact_fields_required":         "All fields are required",
		"error.period_invalid":                  "Period must be day, month or year",
		"error.date_range_invalid":              "Invalid date range",
		"error.captcha_required":                "Captcha is required",
		"error.captcha_invalid":                 "Captcha is invalid",
		"error.captcha_disabled":                "Captcha is disabled",
		"message.password_reset_sent":           "Password reset email sent",
		"message.password_reset_done":           "Password has been reset",
		"message.password_updated":              "Password updated",
		"message.username_updated":              "Username updated",
		"message.product_deleted":               "Product deleted",
		"message.subscriber_deleted":            "Subscriber deleted",
		"message.shipping_info_saved":           "Shipping info saved",
	},
	LocaleZhCN: {
		"error.bad_request":                     "请求参数错误",
		"error.unauthorized":                    "未授权",
		"error.forbidden":                       "无权限访问",
		"error.not_found":                       "资源不存在",
		"error.internal":                        "服务器内部错误",
		"error.too_many_requests":               "请求过于频繁，请稍后再试",
		"error.auth_header_missing":             "缺少 Authorization 请求头",
		"error.auth_header_invalid":             "Authorization 请求头格式错误",
		"error.token_invalid":                   "令牌无效或已过期",
		"error.token_revoked":                   "登录状态已失效，请重新登录",
		"error.invalid_credentials":             "邮箱或密码错误",
		"error.email_exists":                    "邮箱已被注册",
		"error.email_not_found":                 "邮箱不存在",
		"error.email_invalid":                   "邮箱格式不正确",
		"error.password_invalid":                "密码长度至少 6 位",
		"error.reset_token_invalid":             "重置令牌无效或已过期",
		"error.user_not_found":                  "用户不存在",
		"error.old_password_incorrect":          "原密码错误",
		"error.username_invalid":                "用户名不合法",
		"error.product_not_found":               "商品不存在",
		"error.product_invalid":                 "商品标题必填且价格不能为负",
		"error.product_in_use":                  "商品已被订单引用，请改为下架",
		"error.order_not_found":                 "订单不存在",
		"error.order_items_empty":               "订单至少包含一个商品",
		"error.order_item_invalid":              "订单商品参数错误",
		"error.shipping_info_invalid":           "收货信息不完整",
		"error.shipping_info_exists":            "该订单已存在收货信息",
		"error.order_status_transition_invalid": "订单状态流转不合法",
		"error.subscriber_email_required":       "邮箱必填",
		"error.subscriber_exists":               "该邮箱已订阅",
		"error.subscriber_not_found":            "订阅不存在",
		"error.contact_fields_required":         "所有字段均为必填",
		"error.period_invalid":                  "统计粒度只能是 day、month 或 year",
		"error.date_range_invalid":              "时间范围不合法",
		"error.captcha_required":                "请完成验证码",
		"error.captcha_invalid":                 "验证码错误",
		"error.captcha_disabled":                "验证码未启用",
		"message.password_reset_sent":           "重置邮件已发送",
		"message.password_reset_done":           "密码已重置",
		"message.password_updated":              "密码已更新",
		"message.username_updated":              "用户名已更新",
		"message.product_deleted":               "商品已删除",
		"message.subscriber_deleted":            "订阅已删除",
		"message.shipping_info_saved":           "收货信息已保存",
	},
}
