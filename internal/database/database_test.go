package database_test

import (
	"testing"

	"github.com/SundayYogurt/pim_service/internal/database"
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))

	for _, model := range []any{&domain.Product{}, &domain.AuditLog{}, &domain.ChangeHistory{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
