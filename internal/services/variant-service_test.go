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

func TestVariantService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	product := seedProduct(t, f, "Shirt", client.ID, nil)

	tests := []struct {
		name  string
		input dto.VariantCreateRequest
		msg   string
	}{
		{"missing product", dto.VariantCreateRequest{Name: "M"}, MsgVariantRequired},
		{"missing name", dto.VariantCreateRequest{ProductID: product.ID}, MsgVariantRequired},
		{"unknown product", dto.VariantCreateRequest{ProductID: 999, Name: "M"}, MsgProductMissing},
		{"negative price", dto.VariantCreateRequest{ProductID: product.ID, Name: "M", Price: -1}, MsgInvalidPrice},
		{"unknown attribute", dto.VariantCreateRequest{
			ProductID:       product.ID,
			Name:            "M",
			AttributeValues: []dto.AttributeValueInput{{AttributeID: 5, Value: "x"}},
		}, MsgAttributeMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.variants.Create(ctx, actor, tt.input)
			requireStatus(t, err, http.StatusBadRequest, tt.msg)
		})
	}

	assert.Zero(t, f.count(t, &domain.Variant{}))
	assert.Zero(t, f.count(t, &domain.AuditLog{}, "entity = ?", domain.EntityVariant))
}

func TestVariantService_AttributeValuesAreReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	product := seedProduct(t, f, "Shirt", client.ID, nil)

	color, err := f.attributes.Create(ctx, actor, dto.AttributeCreateRequest{Name: "Color", Type: "select"})
	require.NoError(t, err)
	size, err := f.attributes.Create(ctx, actor, dto.AttributeCreateRequest{Name: "Size"})
	require.NoError(t, err)
	assert.Equal(t, domain.AttributeTypeSelect, color.Type)
	assert.Equal(t, domain.AttributeTypeText, size.Type)

	variant, err := f.variants.Create(ctx, actor, dto.VariantCreateRequest{
		ProductID: product.ID,
		Name:      "Red M",
		Price:     19.9,
		Stock:     3,
		AttributeValues: []dto.AttributeValueInput{
			{AttributeID: color.ID, Value: "red"},
			{AttributeID: size.ID, Value: "M"},
		},
	})
	require.NoError(t, err)
	require.Len(t, variant.AttributeValues, 2)

	values := []dto.AttributeValueInput{{AttributeID: color.ID, Value: "blue"}}
	updated, err := f.variants.Update(ctx, actor, variant.ID, dto.VariantUpdateRequest{
		Name:            ptr("Blue M"),
		AttributeValues: &values,
	})
	require.NoError(t, err)
	assert.Equal(t, "Blue M", updated.Name)
	require.Len(t, updated.AttributeValues, 1)
	assert.Equal(t, "blue", updated.AttributeValues[0].Value)
	assert.Equal(t, int64(1), f.count(t, &domain.AttributeValue{}))

	history := f.history(t, domain.EntityVariant, variant.ID)
	require.Len(t, history, 2)
	assert.Contains(t, string(history[1].DataBefore), `"red"`)
	assert.Contains(t, string(history[1].DataAfter), `"blue"`)

	// untouched values stay when the list is absent
	_, err = f.variants.Update(ctx, actor, variant.ID, dto.VariantUpdateRequest{Stock: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.count(t, &domain.AttributeValue{}))

	err = f.attributes.Delete(ctx, actor, color.ID)
	requireStatus(t, err, http.StatusBadRequest, MsgAttributeValues)

	require.NoError(t, f.variants.Delete(ctx, actor, variant.ID))
	assert.Zero(t, f.count(t, &domain.AttributeValue{}))
	require.NoError(t, f.attributes.Delete(ctx, actor, color.ID))

	logs := f.logs(t, domain.EntityVariant, variant.ID)
	require.Len(t, logs, 4)
	assert.Equal(t, domain.ActionDelete, logs[3].Action)

	history = f.history(t, domain.EntityVariant, variant.ID)
	require.Len(t, history, 4)
	assert.Empty(t, history[3].DataAfter)
}

func TestVariantService_ListByProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := seedClient(t, f, "Acme")
	shirt := seedProduct(t, f, "Shirt", client.ID, nil)
	pants := seedProduct(t, f, "Pants", client.ID, nil)

	for _, name := range []string{"S", "M", "L"} {
		_, err := f.variants.Create(ctx, actor, dto.VariantCreateRequest{ProductID: shirt.ID, Name: name})
		require.NoError(t, err)
	}
	_, err := f.variants.Create(ctx, actor, dto.VariantCreateRequest{ProductID: pants.ID, Name: "32", Status: "ACTIVE"})
	require.NoError(t, err)

	list, total, err := f.variants.List(dto.VariantFilter{ProductID: &shirt.ID}, dto.PageQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, "L", list[0].Name)

	active, total, err := f.variants.List(dto.VariantFilter{Status: "active"}, dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, active, 1)

	_, err = f.variants.Get(999)
	requireStatus(t, err, http.StatusNotFound, MsgVariantNotFound)
}
