package repository

import (
	"errors"
	"strings"

	"github.com/furniture-shop/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	SetArchived(id uint, archived bool) error
	CountOrderItems(id uint) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		operator := likeOperatorByDialect(dbDialectName(r.db))
		like := "%" + escapeLike(search) + "%"
		query = query.Where("title "+operator+" ? ESCAPE '"+likeEscapeChar+"'", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（包含已归档商品）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品的可编辑字段
// 归档标记只经 SetArchived 修改，避免旧快照覆盖并发归档。
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("title", "description", "image_url", "category", "price", "updated_at").
		Updates(product).Error
}

// Delete 删除商品
// 说明：被订单项引用的商品拒绝物理删除，应改用归档。
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		refs, err := (&GormProductRepository{db: tx}).CountOrderItems(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrProductInUse
		}
		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SetArchived 设置归档标记
func (r *GormProductRepository) SetArchived(id uint, archived bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("archived", archived).Error
}

// CountOrderItems 统计引用该商品的订单项数量
func (r *GormProductRepository) CountOrderItems(id uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&total).Error
	return total, err
}
