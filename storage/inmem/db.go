package inmemdb

import (
	"sync"
	"time"

	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/comment"
	"github.com/trezcool/darasa/core/course"
)

// DB is the whole backend: four in-memory tables behind one RWMutex.
// Slices keep insertion order, which is part of the lesson/comment
// listing contract. State lives for the process lifetime only.
type DB struct {
	sync.RWMutex

	accounts []*account.Account
	modules  []*course.Module
	lessons  []*course.Lesson
	comments []*comment.Comment

	latency time.Duration
}

// Open returns an empty DB. latency is waited out by every repository
// operation before taking the lock, to mimic a remote backend; pass 0
// to disable (tests).
func Open(latency time.Duration) (*DB, error) {
	return &DB{latency: latency}, nil
}

func (db *DB) simulate() {
	if db.latency > 0 {
		time.Sleep(db.latency)
	}
}
