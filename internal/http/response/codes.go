package response

// 业务状态码与 HTTP 状态保持一致
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// httpStatus 将业务码映射为 HTTP 状态
func httpStatus(code int) int {
	if code >= 400 && code < 600 {
		return code
	}
	return 500
}
