package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductHasVariants  = errors.New("product has variants")
	ErrCategoryHasChildren = errors.New("category has child categories")
	ErrCategoryHasProducts = errors.New("category has products")
	ErrCategoryHasVariants = errors.New("category has variants")
	ErrAttributeHasValues  = errors.New("attribute has values")
	ErrClientHasProducts   = errors.New("client has products")
)

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// updateLocked reads the row under a lock, applies the change and saves it in
// one transaction. The returned before value is the row as it was read.
func updateLocked[T any](db *gorm.DB, id uint, apply func(*T) error, after func(tx *gorm.DB, m *T) error) (T, *T, error) {
	var before, current T

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&current, id).Error; err != nil {
			return err
		}
		before = current

		if err := apply(&current); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&current).Error; err != nil {
			return err
		}
		if after != nil {
			return after(tx, &current)
		}
		return nil
	})
	if err != nil {
		return before, nil, err
	}
	return before, &current, nil
}

// deleteLocked reads the row under a lock, runs guard and deletes it.
// guard returning an error aborts without deleting.
func deleteLocked[T any](db *gorm.DB, id uint, guard func(tx *gorm.DB, m *T) error) (*T, error) {
	var current T

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&current, id).Error; err != nil {
			return err
		}
		if guard != nil {
			if err := guard(tx, &current); err != nil {
				return err
			}
		}
		return tx.Delete(&current).Error
	})
	if err != nil {
		return nil, err
	}
	return &current, nil
}

func exists[T any](db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
