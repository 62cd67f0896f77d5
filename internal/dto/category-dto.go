package dto

type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parentId,omitempty"`
}

// CategoryUpdateRequest: parentId 0 moves the category to the root.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *uint   `json:"parentId,omitempty"`
}

type CategoryFilter struct {
	ParentID *uint
	RootOnly bool
}
