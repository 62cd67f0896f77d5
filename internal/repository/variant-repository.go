package repository

import (
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VariantRepository interface {
	Create(variant *domain.Variant) error
	FindByID(id uint) (*domain.Variant, error)
	FindDetail(id uint) (*domain.Variant, error)
	List(filter dto.VariantFilter, page dto.PageQuery) ([]domain.Variant, int64, error)
	Update(id uint, apply func(v *domain.Variant) error, values *[]domain.AttributeValue) (domain.Variant, *domain.Variant, error)
	Delete(id uint) (*domain.Variant, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func orderedValues(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create inserts the variant together with its attribute values.
func (r *variantRepository) Create(variant *domain.Variant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepository) FindByID(id uint) (*domain.Variant, error) {
	var variant domain.Variant
	if err := r.db.Preload("AttributeValues", orderedValues).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindDetail(id uint) (*domain.Variant, error) {
	var variant domain.Variant
	err := r.db.
		Preload("Product").
		Preload("Category").
		Preload("AttributeValues", orderedValues).
		Preload("AttributeValues.Attribute").
		First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func variantFilters(filter dto.VariantFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.ProductID != nil {
			db = db.Where("product_id = ?", *filter.ProductID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}
}

func (r *variantRepository) List(filter dto.VariantFilter, page dto.PageQuery) ([]domain.Variant, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Variant{}).Scopes(variantFilters(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []domain.Variant
	err := r.db.
		Scopes(variantFilters(filter)).
		Preload("AttributeValues", orderedValues).
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&variants).Error
	if err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

// Update saves the variant and, when values is non-nil, replaces its
// attribute values, all under the row lock.
func (r *variantRepository) Update(id uint, apply func(v *domain.Variant) error, values *[]domain.AttributeValue) (domain.Variant, *domain.Variant, error) {
	var before, current domain.Variant

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Preload("AttributeValues", orderedValues).First(&current, id).Error; err != nil {
			return err
		}
		before = current
		before.AttributeValues = append([]domain.AttributeValue(nil), current.AttributeValues...)

		if err := apply(&current); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&current).Error; err != nil {
			return err
		}
		if values == nil {
			return nil
		}

		if err := tx.Where("variant_id = ?", id).Delete(&domain.AttributeValue{}).Error; err != nil {
			return err
		}
		fresh := make([]domain.AttributeValue, 0, len(*values))
		for _, v := range *values {
			fresh = append(fresh, domain.AttributeValue{
				AttributeID: v.AttributeID,
				VariantID:   id,
				Value:       v.Value,
			})
		}
		if len(fresh) > 0 {
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		}
		current.AttributeValues = fresh
		return nil
	})
	if err != nil {
		return before, nil, err
	}
	return before, &current, nil
}

func (r *variantRepository) Delete(id uint) (*domain.Variant, error) {
	var current domain.Variant

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Preload("AttributeValues", orderedValues).First(&current, id).Error; err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", id).Delete(&domain.AttributeValue{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Delete(&domain.Variant{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}
