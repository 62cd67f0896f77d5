package dto

import (
	"time"

	"github.com/SundayYogurt/pim_service/internal/domain"
)

// AuditEntry is what a service hands to the recorder after a committed
// mutation. Before is nil on create, After is nil on delete.
type AuditEntry struct {
	Entity   string
	EntityID uint
	Action   domain.AuditAction
	Before   any
	After    any
	UserID   uint
}

// AuditEvent is the message published to the audit topic.
type AuditEvent struct {
	Action     domain.AuditAction `json:"action"`
	Entity     string             `json:"entity"`
	EntityID   uint               `json:"entityId"`
	UserID     uint               `json:"userId"`
	OccurredAt time.Time          `json:"occurredAt"`
}

type AuditLogFilter struct {
	Entity   string
	EntityID *uint
	Action   string
	UserID   *uint
}

type HistoryFilter struct {
	Entity   string
	EntityID *uint
}
