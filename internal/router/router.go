package router

import (
	"net/http"
	"strings"

	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/config"
	adminhandlers "github.com/furniture-shop/internal/http/handlers/admin"
	publichandlers "github.com/furniture-shop/internal/http/handlers/public"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fs"
	}
	redisClient := cache.Client()
	loginRule := NewRateLimitRule(redisPrefix, "login", cfg.Security.LoginRateLimit)
	signupRule := NewRateLimitRule(redisPrefix, "signup", cfg.Security.LoginRateLimit)
	forgotRule := NewRateLimitRule(redisPrefix, "forgot", cfg.Security.ForgotRateLimit)
	contactRule := NewRateLimitRule(redisPrefix, "contact", cfg.Security.ContactRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(TrackingMiddleware(cfg.Tracking, c.VisitorService))

	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", RateLimitMiddleware(redisClient, signupRule, KeyByIP), publicHandler.Signup)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, forgotRule, KeyByIPAndJSONField("email")), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 公开接口
		apiV1.GET("/captcha", publicHandler.GetCaptcha)
		apiV1.GET("/products", OptionalUserAuthMiddleware(c.AuthService), publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.POST("/subscribers", publicHandler.Subscribe)
		apiV1.POST("/contact", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.Contact)

		// 登录接口，按角色策略授权
		member := apiV1.Group("")
		member.Use(UserJWTAuthMiddleware(c.AuthService), RoleGuardMiddleware(c.AuthzService))
		{
			member.POST("/auth/change-password", publicHandler.ChangePassword)
			member.POST("/auth/change-username", publicHandler.ChangeUsername)
			member.POST("/orders", publicHandler.CreateOrder)
			member.POST("/shipping-info", publicHandler.AttachShippingInfo)
			member.GET("/customer/me", publicHandler.GetMe)
			member.GET("/customer/orders", publicHandler.ListMyOrders)

			// 商品管理
			member.POST("/products", adminHandler.CreateProduct)
			member.PUT("/products/:id", adminHandler.UpdateProduct)
			member.DELETE("/products/:id", adminHandler.DeleteProduct)
			member.PATCH("/products/:id/archive", adminHandler.ArchiveProduct)
			member.PATCH("/products/:id/unarchive", adminHandler.UnarchiveProduct)

			// 订单管理
			member.GET("/orders", adminHandler.ListOrders)
			member.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			member.GET("/orders/:id/status-history", adminHandler.GetOrderStatusHistory)

			// 订阅管理
			member.GET("/subscribers", adminHandler.ListSubscribers)
			member.DELETE("/subscribers/:id", adminHandler.DeleteSubscriber)

			// 统计报表
			admin := member.Group("/admin")
			{
				admin.GET("/orders", adminHandler.ListOrders)
				admin.GET("/orders/status-count", adminHandler.GetStatusCount)
				admin.GET("/orders/top-products", adminHandler.GetTopProducts)
				admin.GET("/orders/revenue-summary", adminHandler.GetRevenueSummary)
				admin.GET("/orders/revenue-by-day", adminHandler.GetRevenueByDay)
				admin.GET("/orders/revenue-by-month", adminHandler.GetRevenueByMonth)
				admin.GET("/orders/revenue-by-year", adminHandler.GetRevenueByYear)
				admin.GET("/visitors", adminHandler.ListVisitors)
				admin.GET("/visitors/by-country", adminHandler.GetVisitorsByCountry)
				admin.GET("/visitors/by-user-agent", adminHandler.GetVisitorsByUserAgent)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
