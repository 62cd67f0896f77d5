package dto

type AttributeValueInput struct {
	AttributeID uint   `json:"attributeId"`
	Value       string `json:"value"`
}

type VariantCreateRequest struct {
	ProductID       uint                  `json:"productId"`
	CategoryID      *uint                 `json:"categoryId,omitempty"`
	Name            string                `json:"name"`
	SKU             *string               `json:"sku,omitempty"`
	Price           float64               `json:"price"`
	Stock           int                   `json:"stock"`
	Status          string                `json:"status"`
	AttributeValues []AttributeValueInput `json:"attributeValues,omitempty"`
}

// VariantUpdateRequest: a present attributeValues list replaces the stored one.
type VariantUpdateRequest struct {
	CategoryID      *uint                  `json:"categoryId,omitempty"`
	Name            *string                `json:"name,omitempty"`
	SKU             *string                `json:"sku,omitempty"`
	Price           *float64               `json:"price,omitempty"`
	Stock           *int                   `json:"stock,omitempty"`
	Status          *string                `json:"status,omitempty"`
	AttributeValues *[]AttributeValueInput `json:"attributeValues,omitempty"`
}

type VariantFilter struct {
	ProductID *uint
	Status    string
}
