package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailExists          = errors.New("email already in use")
	ErrEmailNotFound        = errors.New("email not found")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrInvalidResetToken    = errors.New("invalid or expired token")
	ErrUserNotFound         = errors.New("user not found")
	ErrOldPasswordIncorrect = errors.New("old password incorrect")
	ErrUsernameInvalid      = errors.New("username invalid")
	ErrTokenRevoked         = errors.New("token revoked")
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInvalid  = errors.New("product invalid")
	ErrProductInUse    = errors.New("product referenced by orders")
)

var (
	ErrOrderNotFound                = errors.New("order not found")
	ErrOrderItemInvalid             = errors.New("order item invalid")
	ErrOrderItemsEmpty              = errors.New("order items empty")
	ErrShippingInfoInvalid          = errors.New("shipping info invalid")
	ErrShippingInfoExists           = errors.New("shipping info already exists")
	ErrOrderStatusInvalid           = errors.New("order status invalid")
	ErrOrderStatusTransitionInvalid = errors.New("order status transition not allowed")
)

var (
	ErrSubscriberEmailRequired = errors.New("email is required")
	ErrSubscriberExists        = errors.New("subscriber already exists")
	ErrSubscriberNotFound      = errors.New("subscriber not found")
	ErrContactFieldsRequired   = errors.New("all fields are required")
)

var (
	ErrPeriodInvalid    = errors.New("period invalid")
	ErrDateRangeInvalid = errors.New("date range invalid")
)

var (
	ErrCaptchaRequired           = errors.New("captcha required")
	ErrCaptchaInvalid            = errors.New("captcha invalid")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
)
