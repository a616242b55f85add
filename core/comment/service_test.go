package comment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
	inmemdb "github.com/trezcool/darasa/storage/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

type testDeps struct {
	svc     comment.Service
	repo    comment.Repository
	admin   account.Account
	ana     account.Account
	ben     account.Account
}

func setup(t *testing.T) testDeps {
	db, err := inmemdb.Open(0)
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	repo := inmemdb.NewCommentRepository(db)
	acctRepo := inmemdb.NewAccountRepository(db)

	return testDeps{
		svc:   comment.NewService(repo),
		repo:  repo,
		admin: testutil.CreateAccount(t, acctRepo, "Prof", "prof@darasa.dev", account.RoleAdmin, account.StatusActive),
		ana:   testutil.CreateAccount(t, acctRepo, "Ana", "ana@example.com", account.RoleStudent, account.StatusActive),
		ben:   testutil.CreateAccount(t, acctRepo, "Ben", "ben@example.com", account.RoleStudent, account.StatusActive),
	}
}

func createComment(t *testing.T, repo comment.Repository, lessonID string, author account.Account, text string, createdAt time.Time) comment.Comment {
	cmt, err := repo.CreateComment(comment.Comment{
		ID:         uuid.New().String(),
		LessonID:   lessonID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		CreatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("createComment() failed: %v", err)
	}
	return cmt
}

func Test_service_Add(t *testing.T) {
	d := setup(t)

	_, err := d.svc.Add(account.Account{}, comment.NewComment{LessonID: "l1", Text: "anon"})
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	cmt, err := d.svc.Add(d.ana, comment.NewComment{LessonID: "l1", Text: "great lesson!"})
	assert.NoError(t, err)
	assert.NotEmpty(t, cmt.ID)
	assert.Equal(t, "l1", cmt.LessonID)
	assert.Equal(t, d.ana.ID, cmt.AuthorID)
	assert.Equal(t, d.ana.Name, cmt.AuthorName)
	assert.False(t, cmt.CreatedAt.IsZero())
}

func Test_service_QueryByLesson_newestFirst(t *testing.T) {
	d := setup(t)
	now := time.Now().UTC()

	oldest := createComment(t, d.repo, "l1", d.ana, "first!", now.Add(-2*time.Hour))
	newest := createComment(t, d.repo, "l1", d.ben, "late to the party", now)
	middle := createComment(t, d.repo, "l1", d.ana, "follow-up", now.Add(-1*time.Hour))
	createComment(t, d.repo, "l2", d.ben, "other lesson", now)

	cmts, err := d.svc.QueryByLesson("l1")
	assert.NoError(t, err)
	if assert.Len(t, cmts, 3) {
		assert.Equal(t, newest.ID, cmts[0].ID)
		assert.Equal(t, middle.ID, cmts[1].ID)
		assert.Equal(t, oldest.ID, cmts[2].ID)
	}

	cmts, err = d.svc.QueryByLesson("no-comments")
	assert.NoError(t, err)
	assert.Empty(t, cmts)
}

func Test_service_QueryByLesson_tiesKeepInsertionOrder(t *testing.T) {
	d := setup(t)
	tstamp := time.Now().UTC()

	first := createComment(t, d.repo, "l1", d.ana, "simultaneous A", tstamp)
	second := createComment(t, d.repo, "l1", d.ben, "simultaneous B", tstamp)

	cmts, err := d.svc.QueryByLesson("l1")
	assert.NoError(t, err)
	if assert.Len(t, cmts, 2) {
		assert.Equal(t, first.ID, cmts[0].ID)
		assert.Equal(t, second.ID, cmts[1].ID)
	}
}

func Test_service_Delete(t *testing.T) {
	d := setup(t)
	now := time.Now().UTC()
	cmt := createComment(t, d.repo, "l1", d.ana, "delete me", now)

	// another student may not
	err := d.svc.Delete(d.ben, cmt.ID)
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))

	// the author may
	assert.NoError(t, d.svc.Delete(d.ana, cmt.ID))
	err = d.svc.Delete(d.ana, cmt.ID)
	assert.Equal(t, comment.ErrNotFound, errors.Cause(err))

	// an active admin may delete anyone's
	cmt = createComment(t, d.repo, "l1", d.ben, "moderate me", now)
	assert.NoError(t, d.svc.Delete(d.admin, cmt.ID))

	// a blocked admin may not
	cmt = createComment(t, d.repo, "l1", d.ben, "safe", now)
	blockedAdmin := d.admin
	blockedAdmin.Status = account.StatusBlocked
	err = d.svc.Delete(blockedAdmin, cmt.ID)
	assert.Equal(t, account.ErrUnauthorized, errors.Cause(err))
}
