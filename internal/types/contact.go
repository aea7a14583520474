package types

import (
	"time"
)

type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:120;not null;column:name" json:"name"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Phone     string    `gorm:"size:18;not null;column:phone" json:"phone"`
	Favorite  bool      `gorm:"not null;default:false;column:favorite" json:"favorite"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (Contact) TableName() string { return "contact" }
