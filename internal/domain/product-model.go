package domain

import "time"

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive:
		return true
	}
	return false
}

type Product struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	SKU         *string       `gorm:"type:varchar(100);uniqueIndex" json:"sku,omitempty"`
	ClientID    uint          `gorm:"not null;index" json:"clientId"`
	CategoryID  *uint         `gorm:"index" json:"categoryId"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	ImageURL    *string       `gorm:"type:text" json:"imageUrl,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	// --- Relations ---
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}
