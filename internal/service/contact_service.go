package service

import (
	"strings"

	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

// ContactService 联系表单服务
type ContactService struct {
	repo     repository.ContactRepository
	notifier Notifier
}

// NewContactService 创建联系表单服务
func NewContactService(repo repository.ContactRepository, notifier Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

// ContactInput 联系表单输入
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// HandleMessage 保存留言并转发到客服邮箱
func (s *ContactService) HandleMessage(input ContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, ErrContactFieldsRequired
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	saved := &models.ContactMessage{
		Name:    name,
		Email:   normalized,
		Message: message,
	}
	if err := s.repo.Create(saved); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		logNotificationResult(constants.NotificationContact, normalized, s.notifier.SendContactNotification(saved))
	}
	return saved, nil
}
