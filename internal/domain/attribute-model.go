package domain

import "time"

type AttributeType string

const (
	AttributeTypeText    AttributeType = "TEXT"
	AttributeTypeNumber  AttributeType = "NUMBER"
	AttributeTypeBoolean AttributeType = "BOOLEAN"
	AttributeTypeSelect  AttributeType = "SELECT"
)

func (t AttributeType) Valid() bool {
	switch t {
	case AttributeTypeText, AttributeTypeNumber, AttributeTypeBoolean, AttributeTypeSelect:
		return true
	}
	return false
}

type Attribute struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Type      AttributeType `gorm:"type:varchar(20);not null;default:'TEXT'" json:"type"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AttributeValue belongs to a variant and is replaced together with it.
type AttributeValue struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AttributeID uint   `gorm:"not null;index" json:"attributeId"`
	VariantID   uint   `gorm:"not null;index" json:"variantId"`
	Value       string `gorm:"type:text;not null" json:"value"`

	Attribute *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
}
