package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/queue"
	"github.com/furniture-shop/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	userRepo          repository.UserRepository
	notifier          Notifier
	queueClient       *queue.Client
	strictTransitions bool
	now               func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, notifier Notifier, queueClient *queue.Client, strictTransitions bool) *OrderService {
	return &OrderService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		queueClient:       queueClient,
		strictTransitions: strictTransitions,
		now:               time.Now,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID       uint
	Items        []CreateOrderItem
	ShippingInfo ShippingInfoInput
}

// CreateOrderItem 创建订单项输入
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// ShippingInfoInput 收货信息输入
type ShippingInfoInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address1   string
	Address2   *string
	City       string
	State      *string
	PostalCode string
	Country    string
}

// ProductNotFoundError 下单时商品不存在
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %d not found", e.ProductID)
}

// Is 兼容 errors.Is(err, ErrProductNotFound)
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// Create 创建订单
// 订单、订单项、收货信息与初始状态流水在同一事务内写入；确认邮件在提交后发送，失败不回滚订单。
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderItemsEmpty
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, ErrOrderItemInvalid
		}
	}
	shipping, err := buildShippingInfo(input.ShippingInfo)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		UserID: input.UserID,
		Status: constants.OrderStatusPending,
	}
	var items []models.OrderItem

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		built, total, err := buildOrderItems(productRepo, input.Items)
		if err != nil {
			return err
		}
		order.Total = total
		if err := orderRepo.Create(order, built); err != nil {
			return err
		}
		shipping.OrderID = order.ID
		if err := orderRepo.CreateShippingInfo(shipping); err != nil {
			return err
		}
		if err := orderRepo.AppendStatusHistory(order.ID, order.Status, now); err != nil {
			return err
		}
		items = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	order.ShippingInfo = shipping
	logger.Infow("order_created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total.String(),
		"items", len(items),
	)

	s.sendOrderConfirmation(order)
	return order, nil
}

// UpdateStatus 后台更新订单状态并追加流水
func (s *OrderService) UpdateStatus(orderID uint, rawStatus string) (*models.Order, error) {
	status := normalizeOrderStatus(rawStatus)
	if !isOrderStatusValid(status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransitionOrderStatus(order.Status, status, s.strictTransitions) {
		return nil, ErrOrderStatusTransitionInvalid
	}

	now := s.now()
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateStatus(order.ID, status, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return orderRepo.AppendStatusHistory(order.ID, status, now)
	})
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = now
	logger.Infow("order_status_updated", "order_id", order.ID, "from", previous, "to", status)

	s.dispatchOrderStatusEmail(order)
	return order, nil
}

// FindStatusHistory 查询订单状态流水（按时间正序）
func (s *OrderService) FindStatusHistory(orderID uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.getOrder(orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListStatusHistory(orderID)
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(status string, page, pageSize int) ([]models.Order, int64, error) {
	status = normalizeOrderStatus(status)
	if status != "" && !isOrderStatusValid(status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   status,
		WithUser: true,
	})
}

// ListByUser 当前用户的订单（含商品信息，按时间倒序）
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserNotFound
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		WithProduct: true,
	})
}

// AttachShippingInfo 为本人订单补录收货信息
func (s *OrderService) AttachShippingInfo(userID, orderID uint, input ShippingInfoInput) (*models.ShippingInfo, error) {
	if userID == 0 || orderID == 0 {
		return nil, ErrOrderNotFound
	}
	shipping, err := buildShippingInfo(input)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	existing, err := s.orderRepo.GetShippingInfo(orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrShippingInfoExists
	}
	shipping.OrderID = orderID
	if err := s.orderRepo.CreateShippingInfo(shipping); err != nil {
		return nil, err
	}
	return shipping, nil
}

func (s *OrderService) getOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) sendOrderConfirmation(order *models.Order) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("order_confirmation_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return
	}
	if user == nil {
		return
	}
	if err := s.notifier.SendOrderConfirmation(user.Email, order); err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) {
			logger.Debugw("order_confirmation_skipped_email_disabled", "order_id", order.ID)
			return
		}
		logger.Warnw("order_confirmation_send_failed", "order_id", order.ID, "receiver", user.Email, "error", err)
	}
}

// buildOrderItems 按当前商品价格生成订单项快照并累计总额
func buildOrderItems(productRepo repository.ProductRepository, requested []CreateOrderItem) ([]models.OrderItem, models.Money, error) {
	products := make(map[uint]*models.Product, len(requested))
	items := make([]models.OrderItem, 0, len(requested))
	total := models.Money{}
	for _, req := range requested {
		product, ok := products[req.ProductID]
		if !ok {
			found, err := productRepo.GetByID(req.ProductID)
			if err != nil {
				return nil, models.Money{}, err
			}
			// 归档商品不可再下单
			if found == nil || found.Archived {
				return nil, models.Money{}, &ProductNotFoundError{ProductID: req.ProductID}
			}
			products[req.ProductID] = found
			product = found
		}
		item := models.OrderItem{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		}
		total = total.Plus(item.LineTotal())
		items = append(items, item)
	}
	return items, total, nil
}

func buildShippingInfo(input ShippingInfoInput) (*models.ShippingInfo, error) {
	info := &models.ShippingInfo{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Address1:   strings.TrimSpace(input.Address1),
		Address2:   trimOptional(input.Address2),
		City:       strings.TrimSpace(input.City),
		State:      trimOptional(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
	}
	required := []string{info.FirstName, info.LastName, info.Email, info.Phone, info.Address1, info.City, info.PostalCode, info.Country}
	for _, value := range required {
		if value == "" {
			return nil, ErrShippingInfoInvalid
		}
	}
	if _, err := mail.ParseAddress(info.Email); err != nil {
		return nil, ErrShippingInfoInvalid
	}
	return info, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
