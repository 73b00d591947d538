package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

func TestOrderCreateWithItemsAndShippingInTransaction(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Oak Table", "50")

	order := &models.Order{UserID: user.ID, Total: models.MustMoney("150"), Status: constants.OrderStatusPending}
	err := repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		items := []models.OrderItem{{ProductID: product.ID, Quantity: 3, UnitPrice: product.Price}}
		if err := txRepo.Create(order, items); err != nil {
			return err
		}
		return txRepo.CreateShippingInfo(&models.ShippingInfo{
			OrderID: order.ID, FirstName: "Ada", LastName: "L", Email: "ada@example.com",
			Phone: "1", Address1: "Main 1", City: "Paris", PostalCode: "75001", Country: "FR",
		})
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 || got.Items[0].UnitPrice.String() != "50.00" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.ShippingInfo == nil || got.ShippingInfo.City != "Paris" {
		t.Fatalf("expected shipping info, got %+v", got.ShippingInfo)
	}
}

func TestOrderCreateRollsBackWhenShippingFails(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	user := createTestUser(t, db, "rollback@example.com")
	product := createTestProduct(t, db, "Chair", "10")

	boom := errors.New("shipping insert failed")
	err := repo.Transaction(func(tx *gorm.DB) error {
		order := &models.Order{UserID: user.ID, Total: models.MustMoney("10"), Status: constants.OrderStatusPending}
		if err := repo.WithTx(tx).Create(order, []models.OrderItem{{ProductID: product.ID, Quantity: 1, UnitPrice: product.Price}}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("expected rollback, orders=%d items=%d", orders, items)
	}
}

func TestOrderStatusHistoryOrderedOldestFirst(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	user := createTestUser(t, db, "history@example.com")
	order := &models.Order{UserID: user.ID, Total: models.MustMoney("1"), Status: constants.OrderStatusPending}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// 乱序写入
	_ = repo.AppendStatusHistory(order.ID, constants.OrderStatusShipped, base.Add(2*time.Hour))
	_ = repo.AppendStatusHistory(order.ID, constants.OrderStatusPending, base)
	_ = repo.AppendStatusHistory(order.ID, constants.OrderStatusPaid, base.Add(time.Hour))

	rows, err := repo.ListStatusHistory(order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	want := []string{constants.OrderStatusPending, constants.OrderStatusPaid, constants.OrderStatusShipped}
	if len(rows) != len(want) {
		t.Fatalf("want %d rows got %d", len(want), len(rows))
	}
	for i, row := range rows {
		if row.Status != want[i] {
			t.Fatalf("row %d: want %s got %s", i, want[i], row.Status)
		}
		if i > 0 && row.ChangedAt.Before(rows[i-1].ChangedAt) {
			t.Fatalf("history not in time order at %d", i)
		}
	}
}

func TestOrderUpdateStatusUnknownOrder(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	if err := repo.UpdateStatus(999, constants.OrderStatusPaid, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestOrderListFiltersAndPreloadsUser(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	older := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	for _, o := range []*models.Order{
		{UserID: alice.ID, Total: models.MustMoney("5"), Status: constants.OrderStatusPaid, CreatedAt: older},
		{UserID: alice.ID, Total: models.MustMoney("6"), Status: constants.OrderStatusPending, CreatedAt: newer},
		{UserID: bob.ID, Total: models.MustMoney("7"), Status: constants.OrderStatusPaid, CreatedAt: newer},
	} {
		if err := repo.Create(o, nil); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	aliceOrders, total, err := repo.List(OrderListFilter{UserID: alice.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || aliceOrders[0].Total.String() != "6.00" {
		t.Fatalf("expected newest first for alice, got total=%d first=%s", total, aliceOrders[0].Total.String())
	}

	paid, _, err := repo.List(OrderListFilter{Status: constants.OrderStatusPaid, WithUser: true})
	if err != nil {
		t.Fatalf("list paid failed: %v", err)
	}
	if len(paid) != 2 {
		t.Fatalf("want 2 paid orders got %d", len(paid))
	}
	if paid[0].User == nil || paid[0].User.Email != "bob@example.com" {
		t.Fatalf("expected preloaded user, got %+v", paid[0].User)
	}
}
