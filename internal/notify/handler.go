package notify

import (
	"encoding/json"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/metrics"
	"go.uber.org/zap"
)

// Handler consumes audit events and mails a notification for the configured
// actions.
type Handler struct {
	sender  Sender
	to      []string
	actions map[string]bool
	log     *zap.Logger
}

var _ interfaces.ConsumerHandler = (*Handler)(nil)

func NewHandler(sender Sender, to []string, actions []string, log *zap.Logger) *Handler {
	set := make(map[string]bool, len(actions))
	for _, a := range actions {
		if a = strings.ToUpper(strings.TrimSpace(a)); a != "" {
			set[a] = true
		}
	}
	return &Handler{sender: sender, to: to, actions: set, log: log}
}

func (h *Handler) HandleMessage(message string) error {
	var event dto.AuditEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		h.log.Warn("invalid event payload", zap.String("payload", message), zap.Error(err))
		return err
	}

	if !h.actions[string(event.Action)] || len(h.to) == 0 {
		metrics.NotificationsTotal.WithLabelValues("ignored").Inc()
		return nil
	}

	body, err := RenderChange(event)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := h.sender.Send(h.to, ChangeSubject(event), body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	return nil
}
