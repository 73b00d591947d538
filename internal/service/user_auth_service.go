package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// UserAuthService 用户身份服务
type UserAuthService struct {
	authService *AuthService
	userRepo    repository.UserRepository
	notifier    Notifier
	now         func() time.Time
}

// NewUserAuthService 创建用户身份服务
func NewUserAuthService(authService *AuthService, userRepo repository.UserRepository, notifier Notifier) *UserAuthService {
	return &UserAuthService{
		authService: authService,
		userRepo:    userRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Signup 注册并签发会话令牌
func (s *UserAuthService) Signup(email, password, name string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.authService.ValidatePassword(password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashed, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user := &models.User{
		Email:        normalized,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(name),
		Role:         constants.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 并发注册时由唯一索引兜底
		if again, lookupErr := s.userRepo.GetByEmail(normalized); lookupErr == nil && again != nil {
			return nil, "", time.Time{}, ErrEmailExists
		}
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.notify(constants.NotificationWelcome, user.Email, func() error {
		return s.notifier.SendWelcome(user.Email)
	})
	return user, token, expiresAt, nil
}

// Login 校验凭据并签发会话令牌
// 邮箱不存在与密码错误返回同一错误。
func (s *UserAuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var user *models.User
	if normalized != "" {
		found, err := s.userRepo.GetByEmail(normalized)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		user = found
	}
	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if err := s.authService.VerifyPassword(hash, password); err != nil || user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// RequestPasswordReset 生成重置令牌并发送邮件
func (s *UserAuthService) RequestPasswordReset(email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return ErrEmailNotFound
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	hashed := hashResetToken(token)
	expiry := s.now().Add(resetTokenTTL)
	user.ResetToken = &hashed
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	s.notify(constants.NotificationPasswordReset, user.Email, func() error {
		return s.notifier.SendPasswordReset(user.Email, token)
	})
	return nil
}

// ResetPassword 使用一次性令牌重置密码
func (s *UserAuthService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}
	user, err := s.userRepo.GetByResetToken(hashResetToken(token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}
	if err := s.authService.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	consumed, err := s.userRepo.ConsumeResetToken(user.ID, hashResetToken(token), s.now(), hashed)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidResetToken
	}
	updated, err := s.userRepo.GetByID(user.ID)
	if err != nil {
		return err
	}
	if updated != nil {
		s.refreshAuthState(updated)
	}
	return nil
}

// ChangePassword 登录态修改密码
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := s.authService.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrOldPasswordIncorrect
	}
	if err := s.authService.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.refreshAuthState(user)
	return nil
}

// ChangeUsername 修改用户名
func (s *UserAuthService) ChangeUsername(userID uint, newName string) error {
	name := strings.TrimSpace(newName)
	if name == "" || len([]rune(name)) > 255 {
		return ErrUsernameInvalid
	}
	if userID == 0 {
		return ErrUserNotFound
	}
	if err := s.userRepo.UpdateName(userID, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetUserByID 获取用户
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserAuthService) issueToken(user *models.User) (string, time.Time, error) {
	token, expiresAt, err := s.authService.GenerateToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return "", time.Time{}, err
	}
	s.refreshAuthState(user)
	return token, expiresAt, nil
}

func (s *UserAuthService) refreshAuthState(user *models.User) {
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("auth_state_cache_set_failed", "user_id", user.ID, "error", err)
	}
}

func (s *UserAuthService) notify(kind, receiver string, send func() error) {
	if s.notifier == nil {
		return
	}
	logNotificationResult(kind, receiver, send())
}

// logNotificationResult 通知失败只记录日志，不影响主流程
func logNotificationResult(kind, receiver string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrEmailServiceDisabled) {
		logger.Debugw("notification_skipped_email_disabled", "kind", kind, "receiver", receiver)
		return
	}
	logger.Warnw("notification_send_failed", "kind", kind, "receiver", receiver, "error", err)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken 数据库只保存令牌摘要
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
