package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Module is a named ordering bucket for lessons.
type Module struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"` // ascending display order
}

// Lesson is a single content unit inside a Module. VideoURL is stored
// and returned verbatim; resolving it into a playable/embeddable form is
// the front end's concern.
type Lesson struct {
	ID          string `json:"id"`
	ModuleID    string `json:"module_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    string `json:"duration"` // free-text label, e.g. "10:00"
	Thumbnail   string `json:"thumbnail"`
}

// NewModule contains information needed to create a new Module.
type NewModule struct {
	Title string `json:"title" validate:"required"`
}

func (nm *NewModule) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	return validate.Struct(nm)
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	ModuleID    string `json:"module_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"required"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Description = core.CleanString(nl.Description)
	return validate.Struct(nl)
}

// UpdateLesson defines what information may be provided to modify an
// existing Lesson. Zero-valued fields are left untouched.
type UpdateLesson struct {
	ModuleID    string `json:"module_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)
	ul.Description = core.CleanString(ul.Description)
	return validate.Struct(ul)
}
