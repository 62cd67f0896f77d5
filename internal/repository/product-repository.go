package repository

import (
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(id uint) (*domain.Product, error)
	FindDetail(id uint) (*domain.Product, error)
	List(filter dto.ProductFilter, page dto.PageQuery) ([]domain.Product, int64, error)
	ListForExport() ([]domain.Product, error)
	Update(id uint, apply func(p *domain.Product) error) (domain.Product, *domain.Product, error)
	Delete(id uint) (*domain.Product, error)
	Exists(id uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindDetail(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.
		Preload("Client").
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func productFilters(filter dto.ProductFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.ClientID != nil {
			db = db.Where("client_id = ?", *filter.ClientID)
		}
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if s := strings.TrimSpace(filter.Search); s != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		return db
	}
}

func (r *productRepository) List(filter dto.ProductFilter, page dto.PageQuery) ([]domain.Product, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Product{}).Scopes(productFilters(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []domain.Product
	err := r.db.
		Scopes(productFilters(filter)).
		Preload("Client").
		Preload("Category").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListForExport() ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(id uint, apply func(p *domain.Product) error) (domain.Product, *domain.Product, error) {
	return updateLocked(r.db, id, apply, nil)
}

func (r *productRepository) Delete(id uint) (*domain.Product, error) {
	return deleteLocked(r.db, id, func(tx *gorm.DB, p *domain.Product) error {
		var variants int64
		if err := tx.Model(&domain.Variant{}).Where("product_id = ?", p.ID).Count(&variants).Error; err != nil {
			return err
		}
		if variants > 0 {
			return ErrProductHasVariants
		}
		return nil
	})
}

func (r *productRepository) Exists(id uint) (bool, error) {
	return exists[domain.Product](r.db, id)
}
