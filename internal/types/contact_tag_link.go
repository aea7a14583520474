package types

// ContactTagLink is the pure association row between contacts and tags.
// Composite primary key, no identity of its own.
type ContactTagLink struct {
	ContactID int64 `gorm:"primaryKey;autoIncrement:false;column:contact_id" json:"contact_id"`
	TagID     int64 `gorm:"primaryKey;autoIncrement:false;column:tag_id" json:"tag_id"`
}

func (ContactTagLink) TableName() string { return "contact_tag_link" }
