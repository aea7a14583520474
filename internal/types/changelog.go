package types

import (
	"time"
)

// ChangeLog records one tracked field edit. Rows are append-only and are
// removed only when the parent contact is deleted.
type ChangeLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactID int64     `gorm:"not null;index;column:contact_id" json:"contact_id"`
	Field     string    `gorm:"not null;column:field" json:"field"`
	OldValue  string    `gorm:"column:old_value" json:"old_value"`
	NewValue  string    `gorm:"column:new_value" json:"new_value"`
	ChangedAt time.Time `gorm:"not null;index" json:"changed_at"`
}

func (ChangeLog) TableName() string { return "change_log" }
