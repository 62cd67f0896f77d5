package repository

import (
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id uint) (*domain.Category, error)
	FindDetail(id uint) (*domain.Category, error)
	List(filter dto.CategoryFilter, page dto.PageQuery) ([]domain.Category, int64, error)
	Update(id uint, apply func(c *domain.Category) error) (domain.Category, *domain.Category, error)
	Delete(id uint) (*domain.Category, error)
	Exists(id uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindDetail(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func categoryFilters(filter dto.CategoryFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case filter.RootOnly:
			db = db.Where("parent_id IS NULL")
		case filter.ParentID != nil:
			db = db.Where("parent_id = ?", *filter.ParentID)
		}
		return db
	}
}

func (r *categoryRepository) List(filter dto.CategoryFilter, page dto.PageQuery) ([]domain.Category, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Category{}).Scopes(categoryFilters(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []domain.Category
	err := r.db.
		Scopes(categoryFilters(filter)).
		Preload("Parent").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(id uint, apply func(c *domain.Category) error) (domain.Category, *domain.Category, error) {
	return updateLocked(r.db, id, apply, nil)
}

// Delete refuses while anything still points at the category.
func (r *categoryRepository) Delete(id uint) (*domain.Category, error) {
	return deleteLocked(r.db, id, func(tx *gorm.DB, c *domain.Category) error {
		checks := []struct {
			model  any
			column string
			err    error
		}{
			{&domain.Category{}, "parent_id", ErrCategoryHasChildren},
			{&domain.Product{}, "category_id", ErrCategoryHasProducts},
			{&domain.Variant{}, "category_id", ErrCategoryHasVariants},
		}

		for _, check := range checks {
			var count int64
			if err := tx.Model(check.model).Where(check.column+" = ?", c.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return check.err
			}
		}
		return nil
	})
}

func (r *categoryRepository) Exists(id uint) (bool, error) {
	return exists[domain.Category](r.db, id)
}
