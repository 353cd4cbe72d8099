package repository

import (
	"errors"

	"gorm.io/gorm"
)

// NewGormRepositories builds the repository set backed by a relational
// database.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Members:  NewMemberRepository(db),
		Teams:    NewTeamRepository(db),
		Projects: NewProjectRepository(db),
		Tags:     NewTagRepository(db),
		Tasks:    NewTaskRepository(db),
		Reports:  NewReportRepository(db),
	}
}

// translate maps gorm's not-found and duplicated-key errors onto ErrNotFound
// and ErrDuplicate. Duplicated keys are only reported when the connection was
// opened with TranslateError.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
