package course

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
)

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		// CreateModule appends mod at the end of the display order,
		// assigning Order atomically with the insert.
		CreateModule(mod Module) (Module, error)
		// QueryAllModules returns modules sorted ascending by Order.
		QueryAllModules() ([]Module, error)
		GetModuleByID(id string) (Module, error)
		CreateLesson(les Lesson) (Lesson, error)
		// QueryAllLessons returns lessons in insertion order.
		QueryAllLessons() ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		// UpdateLesson merges the non-zero fields of les into the stored record.
		UpdateLesson(les Lesson) (Lesson, error)
		DeleteLesson(id string) error
	}

	Service interface {
		QueryModules() ([]Module, error)
		AddModule(actor account.Account, nm NewModule) (Module, error)
		QueryLessons() ([]Lesson, error)
		GetLesson(id string) (Lesson, error)
		CreateLesson(actor account.Account, nl NewLesson) (Lesson, error)
		UpdateLesson(actor account.Account, id string, ul UpdateLesson) (Lesson, error)
		DeleteLesson(actor account.Account, id string) error
	}

	service struct {
		repo        Repository
		commentRepo comment.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, commentRepo comment.Repository) Service {
	return &service{
		repo:        repo,
		commentRepo: commentRepo,
	}
}

func (svc *service) QueryModules() ([]Module, error) {
	return svc.repo.QueryAllModules()
}

// AddModule creates a new Module at the end of the display order.
func (svc *service) AddModule(actor account.Account, nm NewModule) (Module, error) {
	if err := checkAdmin(actor); err != nil {
		return Module{}, err
	}
	mod := Module{
		ID:    uuid.New().String(),
		Title: nm.Title,
	}
	return svc.repo.CreateModule(mod)
}

func (svc *service) QueryLessons() ([]Lesson, error) {
	return svc.repo.QueryAllLessons()
}

func (svc *service) GetLesson(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

// CreateLesson appends a new Lesson. A missing thumbnail falls back to a
// generated placeholder seeded by the lesson id.
func (svc *service) CreateLesson(actor account.Account, nl NewLesson) (Lesson, error) {
	if err := checkAdmin(actor); err != nil {
		return Lesson{}, err
	}

	if _, err := svc.repo.GetModuleByID(nl.ModuleID); err != nil {
		if errors.Cause(err) == ErrModuleNotFound {
			return Lesson{}, core.NewValidationError(err, core.FieldError{Field: "module_id", Error: err.Error()})
		}
		return Lesson{}, errors.Wrap(err, "finding module")
	}

	les := Lesson{
		ID:          uuid.New().String(),
		ModuleID:    nl.ModuleID,
		Title:       nl.Title,
		Description: nl.Description,
		VideoURL:    nl.VideoURL,
		Duration:    nl.Duration,
		Thumbnail:   nl.Thumbnail,
	}
	if les.Thumbnail == "" {
		les.Thumbnail = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", les.ID)
	}
	return svc.repo.CreateLesson(les)
}

func (svc *service) UpdateLesson(actor account.Account, id string, ul UpdateLesson) (Lesson, error) {
	if err := checkAdmin(actor); err != nil {
		return Lesson{}, err
	}
	les := Lesson{
		ID:          id,
		ModuleID:    ul.ModuleID,
		Title:       ul.Title,
		Description: ul.Description,
		VideoURL:    ul.VideoURL,
		Duration:    ul.Duration,
		Thumbnail:   ul.Thumbnail,
	}
	return svc.repo.UpdateLesson(les)
}

// DeleteLesson removes the Lesson and cascades to all of its comments.
func (svc *service) DeleteLesson(actor account.Account, id string) error {
	if err := checkAdmin(actor); err != nil {
		return err
	}
	if err := svc.repo.DeleteLesson(id); err != nil {
		return err
	}
	return errors.Wrap(svc.commentRepo.DeleteCommentsByLesson(id), "cascading comment deletion")
}

func checkAdmin(actor account.Account) error {
	if actor.IsAdmin() && actor.IsActive() {
		return nil
	}
	return account.ErrUnauthorized
}
