package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret-key-for-furniture-shop",
			ExpireHours: 1,
			Issuer:      "furniture-shop-test",
		},
		Security: config.SecurityConfig{PasswordMinLen: 6},
	}
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", Name: "buyer", Role: constants.RoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string) *models.Product {
	t.Helper()
	product := &models.Product{Title: title, Price: models.MustMoney(price), Category: "living-room"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

// steppingClock 每次调用前进一秒，保证流水时间严格递增
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendWelcome(toEmail string) error {
	return m.Called(toEmail).Error(0)
}

func (m *mockNotifier) SendNewsletterWelcome(toEmail string) error {
	return m.Called(toEmail).Error(0)
}

func (m *mockNotifier) SendOrderConfirmation(toEmail string, order *models.Order) error {
	return m.Called(toEmail, order).Error(0)
}

func (m *mockNotifier) SendOrderStatusUpdate(toEmail string, order *models.Order) error {
	return m.Called(toEmail, order).Error(0)
}

func (m *mockNotifier) SendPasswordReset(toEmail, token string) error {
	return m.Called(toEmail, token).Error(0)
}

func (m *mockNotifier) SendContactNotification(message *models.ContactMessage) error {
	return m.Called(message).Error(0)
}
