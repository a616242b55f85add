package course_test

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
	"github.com/trezcool/darasa/core/course"
	inmemdb "github.com/trezcool/darasa/storage/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

type testDeps struct {
	svc         course.Service
	repo        course.Repository
	commentRepo comment.Repository
	admin       account.Account
	student     account.Account
}

func setup(t *testing.T) testDeps {
	db, err := inmemdb.Open(0)
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	repo := inmemdb.NewCourseRepository(db)
	commentRepo := inmemdb.NewCommentRepository(db)
	acctRepo := inmemdb.NewAccountRepository(db)

	return testDeps{
		svc:         course.NewService(repo, commentRepo),
		repo:        repo,
		commentRepo: commentRepo,
		admin:       testutil.CreateAccount(t, acctRepo, "Prof", "prof@darasa.dev", account.RoleAdmin, account.StatusActive),
		student:     testutil.CreateAccount(t, acctRepo, "Ana", "ana@example.com", account.RoleStudent, account.StatusActive),
	}
}

func Test_service_AddModule(t *testing.T) {
	d := setup(t)

	_, err := d.svc.AddModule(d.student, course.NewModule{Title: "Nope"})
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	m1, err := d.svc.AddModule(d.admin, course.NewModule{Title: "Foundations"})
	assert.NoError(t, err)
	assert.Equal(t, 1, m1.Order)

	m2, err := d.svc.AddModule(d.admin, course.NewModule{Title: "Sales"})
	assert.NoError(t, err)
	assert.Equal(t, 2, m2.Order)

	mods, err := d.svc.QueryModules()
	assert.NoError(t, err)
	if assert.Len(t, mods, 2) {
		assert.Equal(t, []string{"Foundations", "Sales"}, []string{mods[0].Title, mods[1].Title})
	}
}

func Test_service_AddModule_concurrentOrders(t *testing.T) {
	d := setup(t)

	const workers = 8
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := d.svc.AddModule(d.admin, course.NewModule{Title: fmt.Sprintf("Module %d", i)})
			assert.NoError(t, err)
		}(i)
	}
	close(start)
	wg.Wait()

	// orders must come out as 1..N with no duplicates
	mods, err := d.svc.QueryModules()
	assert.NoError(t, err)
	if assert.Len(t, mods, workers) {
		orders := make([]int, 0, len(mods))
		for _, mod := range mods {
			orders = append(orders, mod.Order)
		}
		sort.Ints(orders)
		for i, order := range orders {
			assert.Equal(t, i+1, order)
		}
	}
}

func Test_service_CreateLesson(t *testing.T) {
	d := setup(t)
	mod, err := d.svc.AddModule(d.admin, course.NewModule{Title: "Foundations"})
	assert.NoError(t, err)

	_, err = d.svc.CreateLesson(d.student, course.NewLesson{ModuleID: mod.ID, Title: "Nope", VideoURL: "https://v"})
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	// unknown module is a field error
	_, err = d.svc.CreateLesson(d.admin, course.NewLesson{ModuleID: "nope", Title: "Lost", VideoURL: "https://v"})
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	if assert.True(t, ok, "want *core.ValidationError, got %v", err) {
		assert.Equal(t, "module_id", vErr.Fields[0].Field)
	}

	// missing thumbnail falls back to a placeholder seeded by the lesson id
	les, err := d.svc.CreateLesson(d.admin, course.NewLesson{
		ModuleID: mod.ID,
		Title:    "Introduction",
		VideoURL: "https://example.com/v.mp4",
		Duration: "10:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/seed/"+les.ID+"/800/450", les.Thumbnail)

	// explicit thumbnail is kept verbatim
	les2, err := d.svc.CreateLesson(d.admin, course.NewLesson{
		ModuleID:  mod.ID,
		Title:     "Next",
		VideoURL:  "https://example.com/v2.mp4",
		Thumbnail: "/media/thumb.png",
	})
	assert.NoError(t, err)
	assert.Equal(t, "/media/thumb.png", les2.Thumbnail)

	// insertion order
	lessons, err := d.svc.QueryLessons()
	assert.NoError(t, err)
	if assert.Len(t, lessons, 2) {
		assert.Equal(t, les.ID, lessons[0].ID)
		assert.Equal(t, les2.ID, lessons[1].ID)
	}
}

func Test_service_UpdateLesson(t *testing.T) {
	d := setup(t)
	mod, _ := d.svc.AddModule(d.admin, course.NewModule{Title: "Foundations"})
	les, err := d.svc.CreateLesson(d.admin, course.NewLesson{
		ModuleID:    mod.ID,
		Title:       "Introduction",
		Description: "Welcome.",
		VideoURL:    "https://example.com/v.mp4",
		Duration:    "10:00",
	})
	assert.NoError(t, err)

	_, err = d.svc.UpdateLesson(d.student, les.ID, course.UpdateLesson{Title: "Hacked"})
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	_, err = d.svc.UpdateLesson(d.admin, "nope", course.UpdateLesson{Title: "Lost"})
	assert.Equal(t, course.ErrLessonNotFound, errors.Cause(err))

	// only set fields change
	got, err := d.svc.UpdateLesson(d.admin, les.ID, course.UpdateLesson{Title: "Intro & Welcome", Duration: "12:30"})
	assert.NoError(t, err)
	assert.Equal(t, "Intro & Welcome", got.Title)
	assert.Equal(t, "12:30", got.Duration)
	assert.Equal(t, "Welcome.", got.Description)
	assert.Equal(t, "https://example.com/v.mp4", got.VideoURL)
	assert.Equal(t, mod.ID, got.ModuleID)

	got, err = d.svc.GetLesson(les.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Intro & Welcome", got.Title)
}

func Test_service_DeleteLesson_cascades(t *testing.T) {
	d := setup(t)
	mod, _ := d.svc.AddModule(d.admin, course.NewModule{Title: "Foundations"})
	les1, _ := d.svc.CreateLesson(d.admin, course.NewLesson{ModuleID: mod.ID, Title: "One", VideoURL: "https://v1"})
	les2, _ := d.svc.CreateLesson(d.admin, course.NewLesson{ModuleID: mod.ID, Title: "Two", VideoURL: "https://v2"})

	createComment := func(lessonID, text string) {
		_, err := d.commentRepo.CreateComment(comment.Comment{
			ID:         uuid.New().String(),
			LessonID:   lessonID,
			AuthorID:   d.student.ID,
			AuthorName: d.student.Name,
			Text:       text,
			CreatedAt:  time.Now().UTC(),
		})
		assert.NoError(t, err)
	}
	createComment(les1.ID, "great lesson")
	createComment(les1.ID, "thanks!")
	createComment(les2.ID, "still here")

	err := d.svc.DeleteLesson(d.student, les1.ID)
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	err = d.svc.DeleteLesson(d.admin, "nope")
	assert.Equal(t, course.ErrLessonNotFound, errors.Cause(err))

	assert.NoError(t, d.svc.DeleteLesson(d.admin, les1.ID))

	_, err = d.svc.GetLesson(les1.ID)
	assert.Equal(t, course.ErrLessonNotFound, errors.Cause(err))

	// les1's comments are gone, les2's survive
	cmts, err := d.commentRepo.QueryCommentsByLesson(les1.ID)
	assert.NoError(t, err)
	assert.Empty(t, cmts)
	cmts, err = d.commentRepo.QueryCommentsByLesson(les2.ID)
	assert.NoError(t, err)
	assert.Len(t, cmts, 1)
}

func Test_service_CreateLesson_trimsInput(t *testing.T) {
	d := setup(t)
	mod, _ := d.svc.AddModule(d.admin, course.NewModule{Title: "Foundations"})

	nl := course.NewLesson{ModuleID: mod.ID, Title: "  Spaced Out  ", VideoURL: "https://v"}
	// the HTTP layer validates before calling the service
	assert.NoError(t, nl.Validate(validator.New()))
	assert.Equal(t, "Spaced Out", nl.Title)
	assert.False(t, strings.Contains(nl.Title, "  "))
}
