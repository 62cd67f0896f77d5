package services

import (
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"go.uber.org/zap"
)

// AuditService is read only. Nothing in the API mutates the audit trail.
type AuditService interface {
	ListLogs(filter dto.AuditLogFilter, page dto.PageQuery) ([]domain.AuditLog, int64, error)
	ListHistory(filter dto.HistoryFilter, page dto.PageQuery) ([]domain.ChangeHistory, int64, error)
	GetHistory(id uint) (*domain.ChangeHistory, error)
}

type auditService struct {
	repo repository.AuditRepository
	log  *zap.Logger
}

func NewAuditService(repo repository.AuditRepository, log *zap.Logger) AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) ListLogs(filter dto.AuditLogFilter, page dto.PageQuery) ([]domain.AuditLog, int64, error) {
	filter.Action = strings.ToUpper(strings.TrimSpace(filter.Action))
	filter.Entity = strings.TrimSpace(filter.Entity)
	logs, total, err := s.repo.ListAuditLogs(filter, page)
	if err != nil {
		return nil, 0, internal(s.log, "list audit logs", err)
	}
	return logs, total, nil
}

func (s *auditService) ListHistory(filter dto.HistoryFilter, page dto.PageQuery) ([]domain.ChangeHistory, int64, error) {
	filter.Entity = strings.TrimSpace(filter.Entity)
	entries, total, err := s.repo.ListChangeHistory(filter, page)
	if err != nil {
		return nil, 0, internal(s.log, "list change history", err)
	}
	return entries, total, nil
}

func (s *auditService) GetHistory(id uint) (*domain.ChangeHistory, error) {
	entry, err := s.repo.FindChangeHistory(id)
	if err != nil {
		return nil, repoErr(s.log, "find change history", err, MsgHistoryNotFound, "")
	}
	return entry, nil
}
