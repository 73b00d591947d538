package router

import (
	"net/http"
	"strings"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const secondsPerDay = 24 * 60 * 60

// visitRecorder 记录访问
type visitRecorder interface {
	Record(input service.VisitInput) (*models.Visitor, error)
}

// TrackingMiddleware 访客追踪中间件
// 记录失败只写日志，不影响请求。
func TrackingMiddleware(cfg config.TrackingConfig, recorder visitRecorder) gin.HandlerFunc {
	maxAge := cfg.CookieMaxAgeDays * secondsPerDay
	return func(c *gin.Context) {
		if !cfg.Enabled || recorder == nil || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		visitorID, err := c.Cookie(constants.VisitorCookieName)
		visitorID = strings.TrimSpace(visitorID)
		if err != nil || visitorID == "" || len(visitorID) > 64 {
			visitorID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.VisitorCookieName, visitorID, maxAge, "/", "", cfg.CookieSecure, true)
		}
		c.Set(constants.ContextKeyVisitorID, visitorID)

		if _, err := recorder.Record(service.VisitInput{
			VisitorID: visitorID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}); err != nil {
			logger.Warnw("visitor_record_failed",
				"request_id", getRequestID(c),
				"visitor_id", visitorID,
				"error", err,
			)
		}
		c.Next()
	}
}
