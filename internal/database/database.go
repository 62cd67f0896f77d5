package database

import (
	"fmt"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixed id shared by every instance so only one of them migrates at a time
const migrateLockID int64 = 20261017

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. On PostgreSQL the work is guarded by
// a session advisory lock held on one pinned connection.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return autoMigrate(db)
	}

	return db.Connection(func(conn *gorm.DB) (err error) {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock error: %w", err)
		}
		defer func() {
			if unlockErr := conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error; unlockErr != nil && err == nil {
				err = fmt.Errorf("migration unlock error: %w", unlockErr)
			}
		}()

		return autoMigrate(conn)
	})
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.Category{},
		&domain.Attribute{},
		&domain.Product{},
		&domain.Variant{},
		&domain.AttributeValue{},
		&domain.AuditLog{},
		&domain.ChangeHistory{},
	); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
