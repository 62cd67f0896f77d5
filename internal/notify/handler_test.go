package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to []string, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func event(t *testing.T, action domain.AuditAction) string {
	t.Helper()
	b, err := json.Marshal(dto.AuditEvent{
		Action:     action,
		Entity:     domain.EntityProduct,
		EntityID:   12,
		UserID:     3,
		OccurredAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return string(b)
}

func TestHandler_MailsConfiguredActions(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, []string{"ops@example.com"}, []string{" delete ", "UPDATE_CATEGORY"}, zap.NewNop())

	require.NoError(t, h.HandleMessage(event(t, domain.ActionDelete)))
	require.NoError(t, h.HandleMessage(event(t, domain.ActionUpdate)))
	require.NoError(t, h.HandleMessage(event(t, domain.ActionUpdateCategory)))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"ops@example.com"}, sender.sent[0].to)
	assert.Equal(t, "[PIM] DELETE Product #12", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "Product #12")
	assert.Contains(t, sender.sent[0].body, "17/10/2026 09:30:00")
	assert.Equal(t, "[PIM] UPDATE_CATEGORY Product #12", sender.sent[1].subject)
}

func TestHandler_Errors(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	h := NewHandler(sender, []string{"ops@example.com"}, []string{"DELETE"}, zap.NewNop())

	assert.Error(t, h.HandleMessage("{not json"))
	assert.EqualError(t, h.HandleMessage(event(t, domain.ActionDelete)), "smtp down")
}

func TestHandler_NoRecipientsIsNoop(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, nil, []string{"DELETE"}, zap.NewNop())

	require.NoError(t, h.HandleMessage(event(t, domain.ActionDelete)))
	assert.Empty(t, sender.sent)
}
