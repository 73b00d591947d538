package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/furniture-shop/internal/cache"
	"github.com/furniture-shop/internal/config"
	"github.com/furniture-shop/internal/constants"
	"github.com/furniture-shop/internal/logger"
	"github.com/furniture-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost bcrypt 计算成本
const passwordHashCost = bcrypt.DefaultCost

// dummyPasswordHash 用于邮箱不存在时对齐比对耗时
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("furniture-shop-timing"), passwordHashCost)

// AuthService 会话令牌与密码哈希服务
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserClaims 会话令牌声明
type UserClaims struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// IsAdmin 判断声明是否为管理员角色
func (c *UserClaims) IsAdmin() bool {
	return c != nil && c.Role == constants.RoleAdmin
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword == "" {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidatePassword 校验密码长度
func (s *AuthService) ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrInvalidPassword
	}
	if s == nil || s.cfg == nil {
		return nil
	}
	if minLen := s.cfg.Security.PasswordMinLen; minLen > 0 && len([]rune(password)) < minLen {
		return ErrInvalidPassword
	}
	return nil
}

// GenerateToken 生成会话令牌
func (s *AuthService) GenerateToken(id uint, email, role string, tokenVersion uint64) (string, time.Time, error) {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := UserClaims{
		ID:           id,
		Email:        email,
		Role:         role,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken 解析会话令牌
func (s *AuthService) ParseToken(tokenString string) (*UserClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.ID != 0 {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ResolveAuthState 校验令牌版本并返回最新的鉴权快照
// 角色以数据库为准，令牌内的角色仅作参考。
func (s *AuthService) ResolveAuthState(ctx context.Context, claims *UserClaims) (*cache.UserAuthState, error) {
	if claims == nil || claims.ID == 0 {
		return nil, ErrTokenRevoked
	}
	state, hit, err := cache.GetUserAuthState(ctx, claims.ID)
	if err != nil {
		logger.Warnw("auth_state_cache_get_failed", "user_id", claims.ID, "error", err)
	}
	if !hit || state == nil {
		user, err := s.userRepo.GetByID(claims.ID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrTokenRevoked
		}
		state = cache.BuildUserAuthState(user)
		if err := cache.SetUserAuthState(ctx, state); err != nil {
			logger.Warnw("auth_state_cache_set_failed", "user_id", claims.ID, "error", err)
		}
	}
	if state.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenRevoked
	}
	return state, nil
}
