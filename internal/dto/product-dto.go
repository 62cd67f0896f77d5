package dto

type ProductCreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SKU         *string `json:"sku,omitempty"`
	ClientID    uint    `json:"clientId"`
	CategoryID  *uint   `json:"categoryId,omitempty"`
	Status      string  `json:"status"`
}

// ProductUpdateRequest only touches the fields that are present.
// CategoryID 0 moves the product out of its category.
type ProductUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SKU         *string `json:"sku,omitempty"`
	ClientID    *uint   `json:"clientId,omitempty"`
	CategoryID  *uint   `json:"categoryId,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ProductCategoryRequest: a null categoryId clears the category.
type ProductCategoryRequest struct {
	CategoryID *uint `json:"categoryId"`
}

type ProductFilter struct {
	Status     string
	ClientID   *uint
	CategoryID *uint
	Search     string
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
