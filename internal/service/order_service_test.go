package service

import (
	"errors"
	"testing"
	"time"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderServiceForTest(t *testing.T, strict bool) (*OrderService, *gorm.DB, *mockNotifier) {
	t.Helper()
	db := openServiceTestDB(t)
	notifier := &mockNotifier{}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		notifier,
		nil,
		strict,
	)
	svc.now = steppingClock(time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC))
	return svc, db, notifier
}

func validShippingInput() ShippingInfoInput {
	return ShippingInfoInput{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "+33 1 23 45 67 89",
		Address1:   "1 Rue de Rivoli",
		City:       "Paris",
		PostalCode: "75001",
		Country:    "FR",
	}
}

func TestOrderCreateSnapshotsPricesAndTotal(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Oak Table", "50")
	notifier.On("SendOrderConfirmation", "buyer@example.com", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)
	assert.Equal(t, "150.00", order.Total.String())
	assert.Equal(t, constants.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "50.00", order.Items[0].UnitPrice.String())
	assert.Equal(t, 3, order.Items[0].Quantity)
	require.NotNil(t, order.ShippingInfo)
	assert.Equal(t, order.ID, order.ShippingInfo.OrderID)
	notifier.AssertExpectations(t)

	// 商品调价不影响已下单的快照
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", models.MustMoney("80")).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").Preload("ShippingInfo").First(&stored, order.ID).Error)
	assert.Equal(t, "150.00", stored.Total.String())
	assert.Equal(t, "50.00", stored.Items[0].UnitPrice.String())
	require.NotNil(t, stored.ShippingInfo)
	assert.Equal(t, "Paris", stored.ShippingInfo.City)

	history, err := svc.FindStatusHistory(order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, constants.OrderStatusPending, history[0].Status)
}

func TestOrderCreateSumsMultipleLines(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "multi@example.com")
	chair := seedProduct(t, db, "Chair", "19.99")
	lamp := seedProduct(t, db, "Lamp", "5.50")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.Create(CreateOrderInput{
		UserID: user.ID,
		Items: []CreateOrderItem{
			{ProductID: chair.ID, Quantity: 4},
			{ProductID: lamp.ID, Quantity: 1},
			{ProductID: chair.ID, Quantity: 1},
		},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)
	assert.Equal(t, "105.45", order.Total.String())
	assert.Len(t, order.Items, 3)
}

func TestOrderCreateUnknownProductRollsBack(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "missing@example.com")
	product := seedProduct(t, db, "Sofa", "300")

	_, err := svc.Create(CreateOrderInput{
		UserID: user.ID,
		Items: []CreateOrderItem{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
		ShippingInfo: validShippingInput(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.Equal(t, "Product 999 not found", err.Error())

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&count).Error)
	assert.Zero(t, count)
	notifier.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything)
}

func TestOrderCreateRejectsArchivedProduct(t *testing.T) {
	svc, db, _ := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "archived@example.com")
	product := seedProduct(t, db, "Old Shelf", "40")
	require.NoError(t, db.Model(product).Update("archived", true).Error)

	_, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		ShippingInfo: validShippingInput(),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderCreateValidatesInput(t *testing.T) {
	svc, db, _ := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "validate@example.com")
	product := seedProduct(t, db, "Desk", "120")

	_, err := svc.Create(CreateOrderInput{UserID: user.ID, ShippingInfo: validShippingInput()})
	assert.ErrorIs(t, err, ErrOrderItemsEmpty)

	_, err = svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 0}},
		ShippingInfo: validShippingInput(),
	})
	assert.ErrorIs(t, err, ErrOrderItemInvalid)

	shipping := validShippingInput()
	shipping.PostalCode = "  "
	_, err = svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		ShippingInfo: shipping,
	})
	assert.ErrorIs(t, err, ErrShippingInfoInvalid)
}

func TestOrderCreateKeepsOrderWhenConfirmationFails(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "smtpdown@example.com")
	product := seedProduct(t, db, "Bed", "400")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	order, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStatusAppendsHistoryInOrder(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "history@example.com")
	product := seedProduct(t, db, "Wardrobe", "250")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOrderStatusUpdate", "history@example.com", mock.AnythingOfType("*models.Order")).Return(nil).Twice()

	order, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaid, updated.Status)
	_, err = svc.UpdateStatus(order.ID, " SHIPPED ")
	require.NoError(t, err)

	history, err := svc.FindStatusHistory(order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"pending", "paid", "shipped"}, []string{history[0].Status, history[1].Status, history[2].Status})
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].ChangedAt.Before(history[i-1].ChangedAt))
	}
	notifier.AssertExpectations(t)
}

func TestUpdateStatusRejectsBogusStatus(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	user := seedUser(t, db, "bogus@example.com")
	product := seedProduct(t, db, "Stool", "15")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, "bogus")
	assert.ErrorIs(t, err, ErrOrderStatusInvalid)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, constants.OrderStatusPending, stored.Status)
	history, err := svc.FindStatusHistory(order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	notifier.AssertNotCalled(t, "SendOrderStatusUpdate", mock.Anything, mock.Anything)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _ := newOrderServiceForTest(t, false)
	_, err := svc.UpdateStatus(404, "paid")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = svc.FindStatusHistory(404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusStrictTransitions(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, true)
	user := seedUser(t, db, "strict@example.com")
	product := seedProduct(t, db, "Mirror", "60")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOrderStatusUpdate", mock.Anything, mock.Anything).Return(nil)

	order, err := svc.Create(CreateOrderInput{
		UserID:       user.ID,
		Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		ShippingInfo: validShippingInput(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, constants.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderStatusTransitionInvalid)

	for _, next := range []string{constants.OrderStatusPaid, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		_, err = svc.UpdateStatus(order.ID, next)
		require.NoError(t, err, next)
	}
	_, err = svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderStatusTransitionInvalid)
}

func TestAttachShippingInfo(t *testing.T) {
	svc, db, _ := newOrderServiceForTest(t, false)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	order := &models.Order{UserID: owner.ID, Total: models.MustMoney("10"), Status: constants.OrderStatusPending}
	require.NoError(t, db.Create(order).Error)

	_, err := svc.AttachShippingInfo(other.ID, order.ID, validShippingInput())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	info, err := svc.AttachShippingInfo(owner.ID, order.ID, validShippingInput())
	require.NoError(t, err)
	assert.Equal(t, order.ID, info.OrderID)

	_, err = svc.AttachShippingInfo(owner.ID, order.ID, validShippingInput())
	assert.ErrorIs(t, err, ErrShippingInfoExists)
}

func TestListByUserScopesToCaller(t *testing.T) {
	svc, db, notifier := newOrderServiceForTest(t, false)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "Rug", "70")
	notifier.On("SendOrderConfirmation", mock.Anything, mock.Anything).Return(nil)

	for _, uid := range []uint{alice.ID, alice.ID, bob.ID} {
		_, err := svc.Create(CreateOrderInput{
			UserID:       uid,
			Items:        []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
			ShippingInfo: validShippingInput(),
		})
		require.NoError(t, err)
	}

	orders, total, err := svc.ListByUser(alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].ID > orders[1].ID)
	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].Product)
	assert.Equal(t, "Rug", orders[0].Items[0].Product.Title)

	all, total, err := svc.ListAdmin("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.NotNil(t, all[0].User)

	_, _, err = svc.ListAdmin("nope", 1, 20)
	assert.ErrorIs(t, err, ErrOrderStatusInvalid)
}
