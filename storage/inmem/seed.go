package inmemdb

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/course"
)

// Seed loads the demo catalog and the master account into an empty DB.
// IDs are fixed so that a durable session mirror written by a previous
// run still resolves after a restart.
func Seed(db *DB, conf *core.Config) {
	db.Lock()
	defer db.Unlock()

	if len(db.accounts) > 0 {
		return // already seeded
	}

	db.accounts = append(db.accounts,
		&account.Account{
			ID:           "acct-master-001",
			Name:         "Professor",
			Email:        core.CleanString(conf.MasterEmail, true /* lower */),
			Role:         account.RoleAdmin,
			Status:       account.StatusActive,
			RegisteredAt: time.Now().UTC(),
			PhotoURL:     null.StringFrom("https://picsum.photos/seed/master/200"),
		},
		&account.Account{
			ID:           "acct-student-001",
			Name:         "Ana Silva",
			Email:        "ana@example.com",
			Role:         account.RoleStudent,
			Status:       account.StatusActive,
			RegisteredAt: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			PaymentDate:  null.TimeFrom(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
	)

	db.modules = append(db.modules,
		&course.Module{ID: "m1", Title: "Foundations", Order: 1},
		&course.Module{ID: "m2", Title: "Authority Marketing", Order: 2},
		&course.Module{ID: "m3", Title: "High-Value Sales", Order: 3},
	)

	db.lessons = append(db.lessons,
		&course.Lesson{
			ID:          "l1",
			ModuleID:    "m1",
			Title:       "Introduction & Welcome",
			Description: "Setting expectations for the course.",
			VideoURL:    "https://www.w3schools.com/html/mov_bbb.mp4",
			Duration:    "10:00",
			Thumbnail:   "https://picsum.photos/seed/lesson1/800/450",
		},
	)
}
