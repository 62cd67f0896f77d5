package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/SundayYogurt/pim_service/internal/audit"
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const actor uint = 1

type stubUploader struct {
	uploaded []string
	err      error
}

func (u *stubUploader) UploadBytes(_ context.Context, folder, filename string, _ []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.uploaded = append(u.uploaded, folder+"/"+filename)
	return "/uploads/" + folder + "/" + filename, nil
}

type fixture struct {
	db         *gorm.DB
	uploader   *stubUploader
	products   ProductService
	variants   VariantService
	categories CategoryService
	attributes AttributeService
	clients    ClientService
	users      UserService
	audits     AuditService
	sheets     SpreadsheetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithAudit(t, nil)
}

// newFixtureWithAudit builds every service over one database. The recorder
// runs without workers so audit rows exist as soon as a call returns.
func newFixtureWithAudit(t *testing.T, auditRepo repository.AuditRepository) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()
	if auditRepo == nil {
		auditRepo = repository.NewAuditRepository(db)
	}
	rec := audit.NewRecorder(auditRepo, nil, log, audit.Options{})

	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	attributeRepo := repository.NewAttributeRepository(db)
	up := &stubUploader{}

	products := NewProductService(productRepo, clientRepo, categoryRepo, up, rec, log)
	return &fixture{
		db:         db,
		uploader:   up,
		products:   products,
		variants:   NewVariantService(repository.NewVariantRepository(db), productRepo, categoryRepo, attributeRepo, rec, log),
		categories: NewCategoryService(categoryRepo, rec, log),
		attributes: NewAttributeService(attributeRepo, rec, log),
		clients:    NewClientService(clientRepo, rec, log),
		users:      NewUserService(repository.NewUserRepository(db), helper.SetupAuth("test-secret"), rec, log),
		audits:     NewAuditService(repository.NewAuditRepository(db), log),
		sheets:     NewSpreadsheetService(products, productRepo, t.TempDir(), log),
	}
}

func (f *fixture) count(t *testing.T, model any, where ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func (f *fixture) history(t *testing.T, entity string, id uint) []domain.ChangeHistory {
	t.Helper()
	var rows []domain.ChangeHistory
	require.NoError(t, f.db.Where("entity = ? AND entity_id = ?", entity, id).Order("id ASC").Find(&rows).Error)
	return rows
}

func (f *fixture) logs(t *testing.T, entity string, id uint) []domain.AuditLog {
	t.Helper()
	var rows []domain.AuditLog
	require.NoError(t, f.db.Where("entity = ? AND entity_id = ?", entity, id).Order("id ASC").Find(&rows).Error)
	return rows
}

func requireStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *ServiceError
	require.True(t, errors.As(err, &se), "expected ServiceError, got %v", err)
	require.Equal(t, status, se.Status)
	if msg != "" {
		require.Equal(t, msg, se.Message)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func field(t *testing.T, raw []byte, name string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return string(m[name])
}

func jsonUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
