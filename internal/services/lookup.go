package services

import (
	"context"
	"errors"

	"github.com/workviyo/taskboard-api/internal/repository"
)

// referenceLookup answers the resolver's name lookups from the repositories.
type referenceLookup struct {
	users    repository.UserRepository
	tags     repository.TagRepository
	teams    repository.TeamRepository
	projects repository.ProjectRepository
}

func (l referenceLookup) UserIDsByNames(ctx context.Context, names []string) ([]string, error) {
	users, err := l.users.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return ids, nil
}

func (l referenceLookup) TagIDsByNames(ctx context.Context, names []string) ([]string, error) {
	tags, err := l.tags.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids, nil
}

func (l referenceLookup) TeamIDByName(ctx context.Context, name string) (string, bool, error) {
	team, err := l.teams.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return team.ID, true, nil
}

func (l referenceLookup) ProjectIDByName(ctx context.Context, name string) (string, bool, error) {
	project, err := l.projects.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return project.ID, true, nil
}
