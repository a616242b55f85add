package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateModule(mod course.Module) (course.Module, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	// assigned here, under the write lock, so concurrent creates cannot
	// end up with the same order
	mod.Order = len(repo.db.modules) + 1
	repo.db.modules = append(repo.db.modules, &mod)
	return mod, nil
}

func (repo *courseRepository) QueryAllModules() ([]course.Module, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	mods := make([]course.Module, 0, len(repo.db.modules))
	for _, m := range repo.db.modules {
		mods = append(mods, *m)
	}
	sort.SliceStable(mods, func(i, j int) bool { return mods[i].Order < mods[j].Order })
	return mods, nil
}

func (repo *courseRepository) GetModuleByID(id string) (course.Module, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, mod := range repo.db.modules {
		if mod.ID == id {
			return *mod, nil
		}
	}
	return course.Module{}, course.ErrModuleNotFound
}

func (repo *courseRepository) CreateLesson(les course.Lesson) (course.Lesson, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.lessons = append(repo.db.lessons, &les)
	return les, nil
}

func (repo *courseRepository) QueryAllLessons() ([]course.Lesson, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]course.Lesson, 0, len(repo.db.lessons))
	for _, l := range repo.db.lessons {
		lessons = append(lessons, *l)
	}
	return lessons, nil
}

func (repo *courseRepository) GetLessonByID(id string) (course.Lesson, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, les := range repo.db.lessons {
		if les.ID == id {
			return *les, nil
		}
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *courseRepository) UpdateLesson(les course.Lesson) (course.Lesson, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	for _, orig := range repo.db.lessons {
		if orig.ID != les.ID {
			continue
		}
		if les.ModuleID != "" {
			orig.ModuleID = les.ModuleID
		}
		if les.Title != "" {
			orig.Title = les.Title
		}
		if les.Description != "" {
			orig.Description = les.Description
		}
		if les.VideoURL != "" {
			orig.VideoURL = les.VideoURL
		}
		if les.Duration != "" {
			orig.Duration = les.Duration
		}
		if les.Thumbnail != "" {
			orig.Thumbnail = les.Thumbnail
		}
		return *orig, nil
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *courseRepository) DeleteLesson(id string) error {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, les := range repo.db.lessons {
		if les.ID == id {
			repo.db.lessons = append(repo.db.lessons[:i], repo.db.lessons[i+1:]...)
			return nil
		}
	}
	return course.ErrLessonNotFound
}
