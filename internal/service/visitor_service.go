package service

import (
	"strings"

	"github.com/furniture-shop/internal/geo"
	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

const maxUserAgentLength = 512

// VisitorService 访客追踪服务
type VisitorService struct {
	repo    repository.VisitorRepository
	locator geo.Locator
}

// NewVisitorService 创建访客追踪服务
func NewVisitorService(repo repository.VisitorRepository, locator geo.Locator) *VisitorService {
	if locator == nil {
		locator = geo.NopLocator{}
	}
	return &VisitorService{repo: repo, locator: locator}
}

// VisitInput 单次访问信息
type VisitInput struct {
	VisitorID string
	IP        string
	UserAgent string
}

// Record 写入一条访问记录（不去重）
func (s *VisitorService) Record(input VisitInput) (*models.Visitor, error) {
	ip := strings.TrimSpace(input.IP)
	visitor := &models.Visitor{
		VisitorID: strings.TrimSpace(input.VisitorID),
		IP:        ip,
		UserAgent: truncateRunes(strings.TrimSpace(input.UserAgent), maxUserAgentLength),
	}
	if loc, ok := s.locator.Lookup(ip); ok {
		visitor.Country = optionalString(loc.Country)
		visitor.Region = optionalString(loc.Region)
		visitor.City = optionalString(loc.City)
	}
	if err := s.repo.Create(visitor); err != nil {
		return nil, err
	}
	return visitor, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func truncateRunes(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
