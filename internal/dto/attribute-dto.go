package dto

type AttributeCreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type AttributeUpdateRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}
