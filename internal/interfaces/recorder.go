package interfaces

import (
	"context"

	"github.com/SundayYogurt/pim_service/internal/dto"
)

// AuditRecorder is the post-commit step every mutating service calls.
// Implementations must never report failure back to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry dto.AuditEntry)
}
