package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/comment"
)

type commentRepository struct {
	db *DB
}

var _ comment.Repository = (*commentRepository)(nil) // interface compliance check

func NewCommentRepository(db *DB) comment.Repository {
	return &commentRepository{db: db}
}

func (repo *commentRepository) CreateComment(cmt comment.Comment) (comment.Comment, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.comments = append(repo.db.comments, &cmt)
	return cmt, nil
}

func (repo *commentRepository) GetCommentByID(id string) (comment.Comment, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cmt := range repo.db.comments {
		if cmt.ID == id {
			return *cmt, nil
		}
	}
	return comment.Comment{}, comment.ErrNotFound
}

func (repo *commentRepository) QueryCommentsByLesson(lessonID string) ([]comment.Comment, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	cmts := make([]comment.Comment, 0)
	for _, cmt := range repo.db.comments {
		if cmt.LessonID == lessonID {
			cmts = append(cmts, *cmt)
		}
	}
	// newest first; stable so creation-time ties keep insertion order
	sort.SliceStable(cmts, func(i, j int) bool { return cmts[i].CreatedAt.After(cmts[j].CreatedAt) })
	return cmts, nil
}

func (repo *commentRepository) DeleteComment(id string) error {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, cmt := range repo.db.comments {
		if cmt.ID == id {
			repo.db.comments = append(repo.db.comments[:i], repo.db.comments[i+1:]...)
			return nil
		}
	}
	return comment.ErrNotFound
}

func (repo *commentRepository) DeleteCommentsByLesson(lessonID string) error {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	kept := repo.db.comments[:0]
	for _, cmt := range repo.db.comments {
		if cmt.LessonID != lessonID {
			kept = append(kept, cmt)
		}
	}
	repo.db.comments = kept
	return nil
}
