package types

// Request inputs. Update fields are pointers so the service can tell
// "not supplied" apart from "supplied as zero value".

type ContactCreateInput struct {
	Name     string   `json:"name" validate:"required,min=1,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required,phone"`
	Favorite *bool    `json:"favorite"`
	Tags     []string `json:"tags"`
}

type ContactUpdateInput struct {
	Name     *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Phone    *string   `json:"phone" validate:"omitempty,phone"`
	Favorite *bool     `json:"favorite"`
	Tags     *[]string `json:"tags"`
}

type NoteCreateInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type TagCreateInput struct {
	Name string `json:"name" validate:"required,min=1,max=40"`
}

type ContactListFilter struct {
	Query    string
	Favorite *bool
	Tag      string
	Limit    int
	Offset   int
}
