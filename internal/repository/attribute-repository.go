package repository

import (
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

type AttributeRepository interface {
	Create(attribute *domain.Attribute) error
	FindByID(id uint) (*domain.Attribute, error)
	List(page dto.PageQuery) ([]domain.Attribute, int64, error)
	CountByIDs(ids []uint) (int64, error)
	Update(id uint, apply func(a *domain.Attribute) error) (domain.Attribute, *domain.Attribute, error)
	Delete(id uint) (*domain.Attribute, error)
}

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(attribute *domain.Attribute) error {
	return r.db.Create(attribute).Error
}

func (r *attributeRepository) FindByID(id uint) (*domain.Attribute, error) {
	var attribute domain.Attribute
	if err := r.db.First(&attribute, id).Error; err != nil {
		return nil, err
	}
	return &attribute, nil
}

func (r *attributeRepository) List(page dto.PageQuery) ([]domain.Attribute, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Attribute{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attributes []domain.Attribute
	err := r.db.Order("name ASC").Limit(page.Limit).Offset(page.Offset()).Find(&attributes).Error
	if err != nil {
		return nil, 0, err
	}
	return attributes, total, nil
}

func (r *attributeRepository) CountByIDs(ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.Model(&domain.Attribute{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *attributeRepository) Update(id uint, apply func(a *domain.Attribute) error) (domain.Attribute, *domain.Attribute, error) {
	return updateLocked(r.db, id, apply, nil)
}

func (r *attributeRepository) Delete(id uint) (*domain.Attribute, error) {
	return deleteLocked(r.db, id, func(tx *gorm.DB, a *domain.Attribute) error {
		var count int64
		if err := tx.Model(&domain.AttributeValue{}).Where("attribute_id = ?", a.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAttributeHasValues
		}
		return nil
	})
}
