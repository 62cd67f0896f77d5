package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_ListsNewestFirstWithFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	product := seedProduct(t, f, "Lamp", client.ID, nil)
	_, err := f.products.Update(ctx, 9, product.ID, dto.ProductUpdateRequest{Name: ptr("Lamp 2")})
	require.NoError(t, err)

	logs, total, err := f.audits.ListLogs(dto.AuditLogFilter{Entity: domain.EntityProduct}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionUpdate, logs[0].Action)

	byUser, total, err := f.audits.ListLogs(dto.AuditLogFilter{UserID: ptr(uint(9))}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, product.ID, byUser[0].EntityID)

	created, _, err := f.audits.ListLogs(dto.AuditLogFilter{Action: "create"}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	history, total, err := f.audits.ListHistory(dto.HistoryFilter{Entity: domain.EntityProduct, EntityID: &product.ID}, dto.PageQuery{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionUpdate, history[0].Action)

	entry, err := f.audits.GetHistory(history[0].ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, entry.EntityID)

	_, err = f.audits.GetHistory(999)
	requireStatus(t, err, http.StatusNotFound, MsgHistoryNotFound)
}
