package comment

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/account"
)

var ErrNotFound = errors.New("comment not found")

type (
	Repository interface {
		CreateComment(cmt Comment) (Comment, error)
		GetCommentByID(id string) (Comment, error)
		// QueryCommentsByLesson returns the lesson's comments newest first.
		// Creation-time ties keep insertion order.
		QueryCommentsByLesson(lessonID string) ([]Comment, error)
		DeleteComment(id string) error
		DeleteCommentsByLesson(lessonID string) error
	}

	Service interface {
		QueryByLesson(lessonID string) ([]Comment, error)
		Add(actor account.Account, nc NewComment) (Comment, error)
		Delete(actor account.Account, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryByLesson(lessonID string) ([]Comment, error) {
	return svc.repo.QueryCommentsByLesson(lessonID)
}

// Add posts a comment as the acting account. Any authenticated account
// may comment; there is no edit operation.
func (svc *service) Add(actor account.Account, nc NewComment) (Comment, error) {
	if actor.ID == "" {
		return Comment{}, account.ErrUnauthorized
	}
	cmt := Comment{
		ID:         uuid.New().String(),
		LessonID:   nc.LessonID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       nc.Text,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateComment(cmt)
}

// Delete removes a comment. Only its author or an active admin may do so.
func (svc *service) Delete(actor account.Account, id string) error {
	cmt, err := svc.repo.GetCommentByID(id)
	if err != nil {
		return err
	}
	if cmt.AuthorID != actor.ID && !(actor.IsAdmin() && actor.IsActive()) {
		return account.ErrUnauthorized
	}
	return svc.repo.DeleteComment(id)
}
