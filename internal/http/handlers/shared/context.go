package shared

import (
	"strconv"
	"strings"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetUserID 读取鉴权中间件写入的用户 ID。
func GetUserID(c *gin.Context) (uint, bool) {
	return GetContextUintWithKeys(c, constants.ContextKeyUserID, "error.unauthorized", "error.internal")
}

// GetUserRole 读取当前请求的用户角色，未登录时为空。
func GetUserRole(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(constants.ContextKeyUserRole)
}

// ParseIDParam 解析路径中的正整数 ID，失败时直接写入 400 响应。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
