package repository

import (
	"errors"
	"fmt"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

const registerLockID int64 = 20261018

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	CreateRegistered(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	List(page dto.PageQuery) ([]domain.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// CreateRegistered inserts a self-registered user: ADMIN when the table is
// empty, EDITOR otherwise. Count and insert share one transaction, serialised
// on PostgreSQL by a transaction advisory lock.
func (r *userRepository) CreateRegistered(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", registerLockID).Error; err != nil {
				return err
			}
		}

		var total int64
		if err := tx.Model(&domain.User{}).Count(&total).Error; err != nil {
			return err
		}

		user.Role = domain.RoleEditor
		if total == 0 {
			user.Role = domain.RoleAdmin
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create registered user: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

func (r *userRepository) List(page dto.PageQuery) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := r.db.Order("id ASC").Limit(page.Limit).Offset(page.Offset()).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
