package types

// Read-side projections returned to the transport layer. Timestamps are
// RFC3339 UTC text.

type ContactView struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Favorite  bool     `json:"favorite"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type NoteView struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type TagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ChangeLogView struct {
	ID        int64  `json:"id"`
	Field     string `json:"field"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
	ChangedAt string `json:"changed_at"`
}
