package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClient(t *testing.T, f *fixture, name string) *domain.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), actor, dto.ClientCreateRequest{Name: name})
	require.NoError(t, err)
	return c
}

func seedCategory(t *testing.T, f *fixture, name string, parent *uint) *domain.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), actor, dto.CategoryCreateRequest{Name: name, ParentID: parent})
	require.NoError(t, err)
	return c
}

func seedProduct(t *testing.T, f *fixture, name string, clientID uint, categoryID *uint) *domain.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), actor, dto.ProductCreateRequest{
		Name:       name,
		ClientID:   clientID,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

func TestProductService_CreateRequiresNameAndClient(t *testing.T) {
	f := newFixture(t)
	client := seedClient(t, f, "Acme")

	tests := []struct {
		name  string
		input dto.ProductCreateRequest
	}{
		{"missing clientId", dto.ProductCreateRequest{Name: "Lamp"}},
		{"missing name", dto.ProductCreateRequest{ClientID: client.ID}},
		{"blank name", dto.ProductCreateRequest{Name: "   ", ClientID: client.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.Create(context.Background(), actor, tt.input)
			requireStatus(t, err, http.StatusBadRequest, MsgProductRequired)
		})
	}

	assert.Zero(t, f.count(t, &domain.Product{}))
	assert.Zero(t, f.count(t, &domain.AuditLog{}, "entity = ?", domain.EntityProduct))
}

func TestProductService_CreateChecksReferences(t *testing.T) {
	f := newFixture(t)
	client := seedClient(t, f, "Acme")

	_, err := f.products.Create(context.Background(), actor, dto.ProductCreateRequest{Name: "Lamp", ClientID: 99})
	requireStatus(t, err, http.StatusBadRequest, MsgClientMissing)

	_, err = f.products.Create(context.Background(), actor, dto.ProductCreateRequest{
		Name:       "Lamp",
		ClientID:   client.ID,
		CategoryID: ptr(uint(42)),
	})
	requireStatus(t, err, http.StatusBadRequest, MsgCategoryMissing)

	_, err = f.products.Create(context.Background(), actor, dto.ProductCreateRequest{
		Name:     "Lamp",
		ClientID: client.ID,
		Status:   "ARCHIVED",
	})
	requireStatus(t, err, http.StatusBadRequest, MsgInvalidStatus)

	assert.Zero(t, f.count(t, &domain.Product{}))
}

func TestProductService_LifecycleIsAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")

	product, err := f.products.Create(ctx, 7, dto.ProductCreateRequest{
		Name:     " Lamp ",
		SKU:      ptr("LMP-1"),
		ClientID: client.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", product.Name)
	assert.Equal(t, domain.ProductStatusDraft, product.Status)

	updated, err := f.products.Update(ctx, 7, product.ID, dto.ProductUpdateRequest{
		Name:   ptr("Desk lamp"),
		Status: ptr("active"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", updated.Name)
	assert.Equal(t, domain.ProductStatusActive, updated.Status)
	assert.Equal(t, "LMP-1", *updated.SKU)

	require.NoError(t, f.products.Delete(ctx, 7, product.ID))
	assert.Zero(t, f.count(t, &domain.Product{}))

	logs := f.logs(t, domain.EntityProduct, product.ID)
	require.Len(t, logs, 3)
	for i, action := range []domain.AuditAction{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete} {
		assert.Equal(t, action, logs[i].Action)
		assert.Equal(t, uint(7), logs[i].UserID)
	}

	history := f.history(t, domain.EntityProduct, product.ID)
	require.Len(t, history, 3)

	assert.Empty(t, history[0].DataBefore)
	assert.NotEmpty(t, history[0].DataAfter)

	assert.JSONEq(t, `"Lamp"`, field(t, history[1].DataBefore, "name"))
	assert.JSONEq(t, `"Desk lamp"`, field(t, history[1].DataAfter, "name"))

	assert.NotEmpty(t, history[2].DataBefore)
	assert.Empty(t, history[2].DataAfter)
}

func TestProductService_UpdateMissingProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.Update(context.Background(), actor, 404, dto.ProductUpdateRequest{Name: ptr("x")})
	requireStatus(t, err, http.StatusNotFound, MsgProductNotFound)

	err = f.products.Delete(context.Background(), actor, 404)
	requireStatus(t, err, http.StatusNotFound, MsgProductNotFound)

	assert.Zero(t, f.count(t, &domain.AuditLog{}))
}

func TestProductService_DeleteWithVariantsIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	product := seedProduct(t, f, "Shirt", client.ID, nil)

	_, err := f.variants.Create(ctx, actor, dto.VariantCreateRequest{ProductID: product.ID, Name: "M"})
	require.NoError(t, err)

	err = f.products.Delete(ctx, actor, product.ID)
	requireStatus(t, err, http.StatusBadRequest, MsgProductHasVariant)

	assert.Equal(t, int64(1), f.count(t, &domain.Product{}))
	assert.Zero(t, f.count(t, &domain.AuditLog{}, "entity = ? AND action = ?", domain.EntityProduct, domain.ActionDelete))
	assert.Zero(t, f.count(t, &domain.ChangeHistory{}, "entity = ? AND action = ?", domain.EntityProduct, domain.ActionDelete))
}

func TestProductService_UpdateCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	shoes := seedCategory(t, f, "Shoes", nil)
	boots := seedCategory(t, f, "Boots", nil)
	product := seedProduct(t, f, "Hiker", client.ID, &shoes.ID)

	moved, err := f.products.UpdateCategory(ctx, actor, product.ID, dto.ProductCategoryRequest{CategoryID: &boots.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.CategoryID)
	assert.Equal(t, boots.ID, *moved.CategoryID)

	logs := f.logs(t, domain.EntityProduct, product.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionUpdateCategory, logs[1].Action)

	history := f.history(t, domain.EntityProduct, product.ID)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ActionUpdateCategory, history[1].Action)
	assert.NotEmpty(t, history[1].DataBefore)
	assert.NotEmpty(t, history[1].DataAfter)
	assert.Equal(t, field(t, history[1].DataBefore, "categoryId"), jsonUint(shoes.ID))
	assert.Equal(t, field(t, history[1].DataAfter, "categoryId"), jsonUint(boots.ID))

	cleared, err := f.products.UpdateCategory(ctx, actor, product.ID, dto.ProductCategoryRequest{})
	require.NoError(t, err)
	assert.Nil(t, cleared.CategoryID)

	_, err = f.products.UpdateCategory(ctx, actor, product.ID, dto.ProductCategoryRequest{CategoryID: ptr(uint(999))})
	requireStatus(t, err, http.StatusBadRequest, MsgCategoryMissing)
}

func TestProductService_SetImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	product := seedProduct(t, f, "Lamp", client.ID, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	photo := buf.Bytes()

	updated, err := f.products.SetImage(ctx, actor, product.ID, "photo.PNG", photo)
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Contains(t, *updated.ImageURL, "/uploads/products/")
	assert.Contains(t, *updated.ImageURL, ".jpg")
	require.Len(t, f.uploader.uploaded, 1)

	history := f.history(t, domain.EntityProduct, product.ID)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ActionUpdate, history[1].Action)

	_, err = f.products.SetImage(ctx, actor, product.ID, "photo.png", []byte("not a png"))
	requireStatus(t, err, http.StatusBadRequest, MsgInvalidImage)

	f.uploader.err = errors.New("storage down")
	_, err = f.products.SetImage(ctx, actor, product.ID, "photo.png", photo)
	requireStatus(t, err, http.StatusInternalServerError, MsgInternal)

	_, err = f.products.SetImage(ctx, actor, 999, "photo.png", photo)
	requireStatus(t, err, http.StatusNotFound, MsgProductNotFound)
}

func TestProductService_ListPaginatesAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := seedClient(t, f, "Acme")
	globex := seedClient(t, f, "Globex")

	for i := 0; i < 25; i++ {
		seedProduct(t, f, "Acme product", acme.ID, nil)
	}
	_, err := f.products.Create(ctx, actor, dto.ProductCreateRequest{Name: "Rocket", ClientID: globex.ID, Status: "ACTIVE"})
	require.NoError(t, err)

	page2, total, err := f.products.List(dto.ProductFilter{ClientID: &acme.ID}, dto.PageQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2, 10)
	assert.Equal(t, int64(25), total)

	page3, _, err := f.products.List(dto.ProductFilter{ClientID: &acme.ID}, dto.PageQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	active, total, err := f.products.List(dto.ProductFilter{Status: "active"}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Rocket", active[0].Name)

	found, _, err := f.products.List(dto.ProductFilter{Search: "rOCK"}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestProductService_GetIncludesRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	category := seedCategory(t, f, "Lights", nil)
	product := seedProduct(t, f, "Lamp", client.ID, &category.ID)
	_, err := f.variants.Create(ctx, actor, dto.VariantCreateRequest{ProductID: product.ID, Name: "Red"})
	require.NoError(t, err)

	got, err := f.products.Get(product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Acme", got.Client.Name)
	assert.Equal(t, "Lights", got.Category.Name)
	assert.Len(t, got.Variants, 1)

	_, err = f.products.Get(999)
	requireStatus(t, err, http.StatusNotFound, MsgProductNotFound)
}

func TestProductService_AuditFailureDoesNotFailMutation(t *testing.T) {
	f := newFixtureWithAudit(t, brokenLogs{})
	client := seedClient(t, f, "Acme")

	product, err := f.products.Create(context.Background(), actor, dto.ProductCreateRequest{Name: "Lamp", ClientID: client.ID})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, int64(1), f.count(t, &domain.Product{}))
	assert.Zero(t, f.count(t, &domain.AuditLog{}))
}

// brokenLogs fails every audit write.
type brokenLogs struct {
	repository.AuditRepository
}

func (brokenLogs) CreateAuditLog(context.Context, *domain.AuditLog) error {
	return errors.New("audit store down")
}

func (brokenLogs) CreateChangeHistory(context.Context, *domain.ChangeHistory) error {
	return errors.New("audit store down")
}
