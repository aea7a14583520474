package types

// Tag is a shared label. Rows are never owned by a contact and survive the
// deletion of every contact that references them.
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:40;uniqueIndex;not null;column:name" json:"name"`
}

func (Tag) TableName() string { return "tag" }
