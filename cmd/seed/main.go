package main

import (
	"os"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"

	gormlogger "gorm.io/gorm/logger"
)

// demoProducts 演示家具目录
var demoProducts = []models.Product{
	{
		Title:       "Oslo Lounge Chair",
		Description: "Solid oak frame with wool upholstery.",
		ImageURL:    "https://images.unsplash.com/photo-1505843490538-5133c6c7d0e1",
		Category:    "Chairs",
		Price:       models.MustMoney("249.00"),
	},
	{
		Title:       "Bergen Dining Table",
		Description: "Extendable walnut table seating six to eight.",
		ImageURL:    "https://images.unsplash.com/photo-1533090481720-856c6e3c1fdc",
		Category:    "Tables",
		Price:       models.MustMoney("899.00"),
	},
	{
		Title:       "Malmo Three-Seat Sofa",
		Description: "Linen blend sofa with removable covers.",
		ImageURL:    "https://images.unsplash.com/photo-1555041469-a586c61ea9bc",
		Category:    "Sofas",
		Price:       models.MustMoney("1299.99"),
	},
	{
		Title:       "Aarhus Bookshelf",
		Description: "Five-tier ash bookshelf.",
		ImageURL:    "https://images.unsplash.com/photo-1594620302200-9a762244a156",
		Category:    "Storage",
		Price:       models.MustMoney("329.50"),
	},
	{
		Title:       "Turku Bed Frame",
		Description: "Queen size frame in white birch.",
		ImageURL:    "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85",
		Category:    "Beds",
		Price:       models.MustMoney("749.00"),
	},
	{
		Title:       "Lund Side Table",
		Description: "Round side table with powder coated steel legs.",
		ImageURL:    "https://images.unsplash.com/photo-1499933374294-4584851497cc",
		Category:    "Tables",
		Price:       models.MustMoney("119.00"),
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, gormlogger.Warn); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 管理员账号
	if err := models.InitDefaultAdmin(os.Getenv("FS_DEFAULT_ADMIN_EMAIL"), os.Getenv("FS_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init admin: %v", err)
	}

	// 商品按标题去重
	created := 0
	for _, product := range demoProducts {
		var count int64
		if err := models.DB.Model(&models.Product{}).Where("title = ?", product.Title).Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check product %s: %v", product.Title, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Product already exists: %s", product.Title)
			continue
		}
		item := product
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Title, err)
			continue
		}
		created++
		stdLog.Printf("Created product: %s", product.Title)
	}

	logger.Infow("seed_completed", "products_created", created, "products_total", len(demoProducts))
}
