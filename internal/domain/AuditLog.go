package domain

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	ActionCreate         AuditAction = "CREATE"
	ActionUpdate         AuditAction = "UPDATE"
	ActionDelete         AuditAction = "DELETE"
	ActionUpdateCategory AuditAction = "UPDATE_CATEGORY"
)

const (
	EntityProduct   = "Product"
	EntityVariant   = "Variant"
	EntityCategory  = "Category"
	EntityAttribute = "Attribute"
	EntityClient    = "Client"
	EntityUser      = "User"
)

// AuditLog is append-only. UserID is a weak reference, no FK.
type AuditLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Action    AuditAction `gorm:"type:varchar(30);not null;index" json:"action"`
	Entity    string      `gorm:"type:varchar(100);not null;index:idx_audit_logs_entity" json:"entity"`
	EntityID  uint        `gorm:"not null;index:idx_audit_logs_entity" json:"entityId"`
	UserID    uint        `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
}

// ChangeHistory keeps full before/after snapshots of history-tracked entities.
type ChangeHistory struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Entity     string         `gorm:"type:varchar(100);not null;index:idx_change_histories_entity" json:"entity"`
	EntityID   uint           `gorm:"not null;index:idx_change_histories_entity" json:"entityId"`
	Action     AuditAction    `gorm:"type:varchar(30);not null" json:"action"`
	DataBefore datatypes.JSON `gorm:"type:jsonb" json:"dataBefore"`
	DataAfter  datatypes.JSON `gorm:"type:jsonb" json:"dataAfter"`
	UserID     uint           `gorm:"not null;index" json:"userId"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

// HistoryTracked reports whether mutations of entity keep a ChangeHistory row.
func HistoryTracked(entity string) bool {
	switch entity {
	case EntityProduct, EntityVariant, EntityCategory:
		return true
	}
	return false
}
