package comment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Comment is a discussion entry attached to a lesson. AuthorName is a
// denormalized copy taken at creation time; it is not kept in sync with
// later account renames.
type Comment struct {
	ID         string    `json:"id"`
	LessonID   string    `json:"lesson_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// NewComment contains information needed to post a new Comment.
// Author identity always comes from the acting account, never the payload.
type NewComment struct {
	LessonID string `json:"lesson_id" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Text = core.CleanString(nc.Text)
	return validate.Struct(nc)
}
