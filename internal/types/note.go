package types

import (
	"time"
)

type Note struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactID int64     `gorm:"not null;index;column:contact_id" json:"contact_id"`
	Content   string    `gorm:"size:2000;not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Note) TableName() string { return "note" }
