package repository

import (
	"context"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"gorm.io/gorm"
)

// AuditRepository only appends and reads; audit rows are never changed.
type AuditRepository interface {
	CreateAuditLog(ctx context.Context, log *domain.AuditLog) error
	CreateChangeHistory(ctx context.Context, history *domain.ChangeHistory) error
	ListAuditLogs(filter dto.AuditLogFilter, page dto.PageQuery) ([]domain.AuditLog, int64, error)
	ListChangeHistory(filter dto.HistoryFilter, page dto.PageQuery) ([]domain.ChangeHistory, int64, error)
	FindChangeHistory(id uint) (*domain.ChangeHistory, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateAuditLog(ctx context.Context, log *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) CreateChangeHistory(ctx context.Context, history *domain.ChangeHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func auditLogFilters(filter dto.AuditLogFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Entity != "" {
			db = db.Where("entity = ?", filter.Entity)
		}
		if filter.EntityID != nil {
			db = db.Where("entity_id = ?", *filter.EntityID)
		}
		if filter.Action != "" {
			db = db.Where("action = ?", filter.Action)
		}
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}
		return db
	}
}

func (r *auditRepository) ListAuditLogs(filter dto.AuditLogFilter, page dto.PageQuery) ([]domain.AuditLog, int64, error) {
	var total int64
	if err := r.db.Model(&domain.AuditLog{}).Scopes(auditLogFilters(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []domain.AuditLog
	err := r.db.
		Scopes(auditLogFilters(filter)).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func historyFilters(filter dto.HistoryFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Entity != "" {
			db = db.Where("entity = ?", filter.Entity)
		}
		if filter.EntityID != nil {
			db = db.Where("entity_id = ?", *filter.EntityID)
		}
		return db
	}
}

func (r *auditRepository) ListChangeHistory(filter dto.HistoryFilter, page dto.PageQuery) ([]domain.ChangeHistory, int64, error) {
	var total int64
	if err := r.db.Model(&domain.ChangeHistory{}).Scopes(historyFilters(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.ChangeHistory
	err := r.db.
		Scopes(historyFilters(filter)).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *auditRepository) FindChangeHistory(id uint) (*domain.ChangeHistory, error) {
	var entry domain.ChangeHistory
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
