package repository

import (
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(client *domain.Client) error
	FindByID(id uint) (*domain.Client, error)
	List(search string, page dto.PageQuery) ([]domain.Client, int64, error)
	Update(id uint, apply func(c *domain.Client) error) (domain.Client, *domain.Client, error)
	Delete(id uint) (*domain.Client, error)
	Exists(id uint) (bool, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *domain.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepository) FindByID(id uint) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(search string, page dto.PageQuery) ([]domain.Client, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(search); s != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.Model(&domain.Client{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []domain.Client
	err := r.db.Scopes(scope).Order("name ASC").Limit(page.Limit).Offset(page.Offset()).Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) Update(id uint, apply func(c *domain.Client) error) (domain.Client, *domain.Client, error) {
	return updateLocked(r.db, id, apply, nil)
}

func (r *clientRepository) Delete(id uint) (*domain.Client, error) {
	return deleteLocked(r.db, id, func(tx *gorm.DB, c *domain.Client) error {
		var count int64
		if err := tx.Model(&domain.Product{}).Where("client_id = ?", c.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrClientHasProducts
		}
		return nil
	})
}

func (r *clientRepository) Exists(id uint) (bool, error) {
	return exists[domain.Client](r.db, id)
}
