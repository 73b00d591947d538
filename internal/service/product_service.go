package service

import (
	"errors"
	"strings"

	"github.com/furniture-shop/internal/models"
	"github.com/furniture-shop/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 创建/更新商品输入
// 更新时仅修改非 nil 字段。
type ProductInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
	Price       *models.Money
	Archived    *bool
}

// ListPublic 获取店铺商品列表（不含归档商品）
func (s *ProductService) ListPublic(search, category string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	})
}

// ListAdmin 获取后台商品列表（含归档商品）
func (s *ProductService) ListAdmin(search, category string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:            page,
		PageSize:        pageSize,
		Search:          strings.TrimSpace(search),
		Category:        strings.TrimSpace(category),
		IncludeArchived: true,
	})
}

// GetByID 获取商品详情
// 归档商品仍可按 ID 查询，用于历史订单展示。
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" || input.Price == nil {
		return nil, ErrProductInvalid
	}
	product := &models.Product{}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	archived := product.Archived
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if product.Archived != archived {
		if err := s.repo.SetArchived(id, product.Archived); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Delete 删除商品
// 已被订单引用的商品拒绝物理删除，应改用归档。
func (s *ProductService) Delete(id uint) error {
	if id == 0 {
		return ErrProductNotFound
	}
	err := s.repo.Delete(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrProductInUse):
		return ErrProductInUse
	default:
		return err
	}
}

// Archive 归档商品（幂等）
func (s *ProductService) Archive(id uint) (*models.Product, error) {
	return s.setArchived(id, true)
}

// Unarchive 取消归档（幂等）
func (s *ProductService) Unarchive(id uint) (*models.Product, error) {
	return s.setArchived(id, false)
}

func (s *ProductService) setArchived(id uint, archived bool) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.Archived == archived {
		return product, nil
	}
	if err := s.repo.SetArchived(id, archived); err != nil {
		return nil, err
	}
	product.Archived = archived
	return product, nil
}

func applyProductInput(product *models.Product, input ProductInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ErrProductInvalid
		}
		product.Title = title
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return ErrProductInvalid
		}
		product.Price = models.NewMoneyFromDecimal(input.Price.Decimal)
	}
	if input.Archived != nil {
		product.Archived = *input.Archived
	}
	return nil
}
