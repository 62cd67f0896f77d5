package services

import (
	"context"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/metrics"
)

// committed runs after the primary write is durable. The recorder never
// reports failure, so nothing here can undo or fail the mutation.
func committed(ctx context.Context, rec interfaces.AuditRecorder, entity string, id uint, action domain.AuditAction, before, after any, userID uint) {
	metrics.MutationsTotal.WithLabelValues(entity, string(action)).Inc()
	if rec == nil {
		return
	}
	rec.Record(ctx, dto.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Before:   before,
		After:    after,
		UserID:   userID,
	})
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
