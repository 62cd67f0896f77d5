package domain

import "time"

type Variant struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	ProductID  uint          `gorm:"not null;index" json:"productId"`
	CategoryID *uint         `gorm:"index" json:"categoryId"`
	Name       string        `gorm:"type:varchar(255);not null" json:"name"`
	SKU        *string       `gorm:"type:varchar(100);uniqueIndex" json:"sku,omitempty"`
	Price      float64       `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Stock      int           `gorm:"not null;default:0" json:"stock"`
	Status     ProductStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	// --- Relations ---
	Product         *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AttributeValues []AttributeValue `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"attributeValues,omitempty"`
}
