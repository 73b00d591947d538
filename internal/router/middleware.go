package router

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/furniture-shop/internal/authz"
	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/http/response"
	"github.com/furniture-shop/internal/i18n"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = constants.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// tokenAuthenticator 解析令牌并校验令牌版本
type tokenAuthenticator interface {
	ParseToken(tokenString string) (*service.UserClaims, error)
	ResolveAuthState(ctx context.Context, claims *service.UserClaims) (*cache.UserAuthState, error)
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 读取 Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

// authenticate 校验令牌并写入上下文，失败时返回错误文案 key
func authenticate(c *gin.Context, auth tokenAuthenticator, tokenString string) string {
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return "error.token_invalid"
	}
	state, err := auth.ResolveAuthState(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, service.ErrTokenRevoked) {
			return "error.token_revoked"
		}
		logger.Warnw("auth_state_resolve_failed", "user_id", claims.ID, "error", err)
		return "error.token_invalid"
	}
	c.Set(constants.ContextKeyUserID, state.UserID)
	c.Set(constants.ContextKeyUserEmail, state.Email)
	c.Set(constants.ContextKeyUserRole, state.Role)
	return ""
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(auth tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, failKey := bearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		if failKey := authenticate(c, auth, tokenString); failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		c.Next()
	}
}

// OptionalUserAuthMiddleware 携带有效令牌时写入用户上下文，否则按游客继续
func OptionalUserAuthMiddleware(auth tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth != nil {
			if tokenString, failKey := bearerToken(c); failKey == "" {
				_ = authenticate(c, auth, tokenString)
			}
		}
		c.Next()
	}
}

// RoleGuardMiddleware 按用户角色执行 casbin 授权
func RoleGuardMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("role_guard_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("role_guard_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("role_guard_permission_denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"role", role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
