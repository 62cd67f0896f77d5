package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SundayYogurt/pim_service/config"
	"github.com/SundayYogurt/pim_service/internal/audit"
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/internal/testutil"
	"github.com/SundayYogurt/pim_service/pkg/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()
	dir := t.TempDir()

	app := NewApp(Deps{
		Config: config.Config{
			BaseURL:      "*",
			AccessSecret: testSecret,
			UploadDir:    dir,
		},
		DB:       db,
		Recorder: audit.NewRecorder(repository.NewAuditRepository(db), nil, log, audit.Options{}),
		Uploader: storage.NewLocalUploader(dir, "/uploads"),
		Log:      log,
	})
	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	status, _ := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": password, "name": email,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	return data["token"].(string)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token no proporcionat", body["error"])

	status, body = s.do(t, http.MethodGet, "/api/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Token invàlid o caducat", body["error"])

	other := helper.SetupAuth("another-secret")
	forged, err := other.GenerateToken(1, "x@example.com")
	require.NoError(t, err)
	status, _ = s.do(t, http.MethodGet, "/api/products", forged, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "secret123")
	assert.NotEmpty(t, token)

	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credencials incorrectes", body["error"])

	status, body = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := body["data"].(map[string]any)
	assert.Equal(t, "admin@example.com", me["email"])
	assert.Equal(t, "ADMIN", me["role"])
}

func TestCreateProductWithoutClient(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "secret123")

	status, body := s.do(t, http.MethodPost, "/api/products", token, map[string]any{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"error": "Nom i clientId són obligatoris"}, body)

	var count int64
	require.NoError(t, s.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, s.db.Model(&domain.AuditLog{}).Where("entity = ?", domain.EntityProduct).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductWritesAudit(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "secret123")

	status, body := s.do(t, http.MethodPost, "/api/clients", token, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status)
	clientID := body["data"].(map[string]any)["id"]

	status, body = s.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Chair", "clientId": clientID,
	})
	require.Equal(t, http.StatusCreated, status)
	product := body["data"].(map[string]any)
	assert.Equal(t, "DRAFT", product["status"])

	status, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/change-history?entity=Product&entityId=%v", product["id"]), token, nil)
	require.Equal(t, http.StatusOK, status)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "CREATE", rows[0].(map[string]any)["action"])
}

func TestPagination(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "secret123")

	for i := 0; i < 25; i++ {
		require.NoError(t, s.db.Create(&domain.Client{Name: fmt.Sprintf("client-%02d", i)}).Error)
	}

	status, body := s.do(t, http.MethodGet, "/api/clients?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 10)
	assert.Equal(t, map[string]any{
		"total": float64(25), "page": float64(2), "limit": float64(10), "totalPages": float64(3),
	}, body["pagination"])

	status, body = s.do(t, http.MethodGet, "/api/clients?page=9223372036854775807&limit=20", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])
	assert.Equal(t, float64(math.MaxInt32), body["pagination"].(map[string]any)["page"])
}

func TestInvalidID(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@example.com", "secret123")

	status, body := s.do(t, http.MethodGet, "/api/products/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ID no vàlid", body["error"])

	status, _ = s.do(t, http.MethodGet, "/api/products/999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsersAdminOnly(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@example.com", "secret123")
	editor := s.login(t, "editor@example.com", "secret123")

	status, _ := s.do(t, http.MethodGet, "/api/users", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/users", editor, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = s.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}
