package service

import (
	"errors"
	"strings"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

// SubscriberService 邮件订阅服务
type SubscriberService struct {
	repo     repository.SubscriberRepository
	notifier Notifier
}

// NewSubscriberService 创建订阅服务
func NewSubscriberService(repo repository.SubscriberRepository, notifier Notifier) *SubscriberService {
	return &SubscriberService{repo: repo, notifier: notifier}
}

// Subscribe 订阅并发送欢迎邮件
func (s *SubscriberService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrSubscriberEmailRequired
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	exist, err := s.repo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrSubscriberExists
	}

	subscriber := &models.NewsletterSubscriber{Email: normalized}
	if err := s.repo.Create(subscriber); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		logNotificationResult(constants.NotificationNewsletter, normalized, s.notifier.SendNewsletterWelcome(normalized))
	}
	return subscriber, nil
}

// List 订阅列表
func (s *SubscriberService) List() ([]models.NewsletterSubscriber, error) {
	return s.repo.List()
}

// Unsubscribe 按 ID 删除订阅
func (s *SubscriberService) Unsubscribe(id uint) error {
	if id == 0 {
		return ErrSubscriberNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}
	return nil
}
