package provider

import (
	"fmt"
	"strings"

	"github.com/furniture-shop/internal/authz"
	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/geo"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/queue"
	"github.com/furniture-shop/internal/repository"
	"github.com/furniture-shop/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Locator     geo.Locator

	// Repositories
	UserRepo       repository.UserRepository
	ProductRepo    repository.ProductRepository
	OrderRepo      repository.OrderRepository
	AnalyticsRepo  repository.AnalyticsRepository
	SubscriberRepo repository.SubscriberRepository
	ContactRepo    repository.ContactRepository
	VisitorRepo    repository.VisitorRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UserAuthService   *service.UserAuthService
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	ProductService    *service.ProductService
	OrderService      *service.OrderService
	AnalyticsService  *service.AnalyticsService
	SubscriberService *service.SubscriberService
	ContactService    *service.ContactService
	VisitorService    *service.VisitorService

	closers []func() error
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	c, err := Build(cfg, models.DB, queueClient)
	if err != nil {
		logger.Errorw("provider_build_failed", "error", err)
		panic(err)
	}
	if cache.Enabled() {
		c.closers = append(c.closers, cache.Close)
	}
	return c
}

// Build 在指定数据库上组装仓储与服务
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	if queueClient != nil {
		c.closers = append(c.closers, queueClient.Close)
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.AnalyticsRepo = repository.NewAnalyticsRepository(db)
	c.SubscriberRepo = repository.NewSubscriberRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
	c.VisitorRepo = repository.NewVisitorRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}
	c.AuthzService = authzService

	c.Locator = c.openLocator()

	c.EmailService = service.NewEmailService(&c.Config.Email, c.Config.App.FrontendURL)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserAuthService = service.NewUserAuthService(c.AuthService, c.UserRepo, c.EmailService)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.UserRepo, c.EmailService, c.QueueClient, c.Config.Order.StrictTransitions)
	c.AnalyticsService = service.NewAnalyticsService(c.AnalyticsRepo, c.VisitorRepo)
	c.SubscriberService = service.NewSubscriberService(c.SubscriberRepo, c.EmailService)
	c.ContactService = service.NewContactService(c.ContactRepo, c.EmailService)
	c.VisitorService = service.NewVisitorService(c.VisitorRepo, c.Locator)
	return nil
}

// openLocator 打开 GeoIP 数据库，未配置或失败时退化为空实现
func (c *Container) openLocator() geo.Locator {
	path := strings.TrimSpace(c.Config.Tracking.GeoIPPath)
	if path == "" {
		return geo.NopLocator{}
	}
	locator, err := geo.Open(path)
	if err != nil {
		logger.Warnw("provider_open_geoip_failed", "path", path, "error", err)
		return geo.NopLocator{}
	}
	c.closers = append(c.closers, locator.Close)
	return locator
}

// Close 释放容器持有的外部资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.Warnw("provider_close_resource_failed", "error", err)
		}
	}
	c.closers = nil
}
