package mongostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/taskquery"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepository struct {
	coll     *mongo.Collection
	users    *UserRepository
	teams    *TeamRepository
	projects *ProjectRepository
	tags     *TagRepository
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	task.OwnerIDs = orEmpty(task.OwnerIDs)
	task.TagIDs = orEmpty(task.TagIDs)
	task.CreatedAt = now()
	task.UpdatedAt = task.CreatedAt

	_, err := r.coll.InsertOne(ctx, task)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := findOne[models.Task](ctx, r.coll, byID(id))
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{*task}
	if err := r.expand(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

func (r *TaskRepository) Find(ctx context.Context, filter taskquery.Filter) ([]models.Task, error) {
	if filter.NoMatch {
		return []models.Task{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	tasks, err := findAll[models.Task](ctx, r.coll, TaskFilterDocument(filter), opts)
	if err != nil {
		return nil, err
	}
	if err := r.expand(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = now()
	result, err := r.coll.UpdateOne(ctx, byID(task.ID), bson.M{"$set": bson.M{
		"name":           task.Name,
		"project":        task.ProjectID,
		"team":           task.TeamID,
		"timeToComplete": task.TimeToComplete,
		"priority":       task.Priority,
		"status":         task.Status,
		"owners":         orEmpty(task.OwnerIDs),
		"tags":           orEmpty(task.TagIDs),
		"updatedAt":      task.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) AddOwners(ctx context.Context, taskID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	result, err := r.coll.UpdateOne(ctx, byID(taskID), bson.M{
		"$addToSet": bson.M{"owners": bson.M{"$each": userIDs}},
		"$set":      bson.M{"updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// expand resolves project, team, owner and tag references of tasks with one
// query per referenced collection. Dangling references are dropped.
func (r *TaskRepository) expand(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	var projectIDs, teamIDs, ownerIDs, tagIDs []string
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.ProjectID)
		teamIDs = append(teamIDs, t.TeamID)
		ownerIDs = append(ownerIDs, t.OwnerIDs...)
		tagIDs = append(tagIDs, t.TagIDs...)
	}

	projects, err := r.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		return err
	}
	teams, err := r.teams.FindByIDs(ctx, teamIDs)
	if err != nil {
		return err
	}
	owners, err := r.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return err
	}
	tags, err := r.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}

	projectIndex := index(projects, func(p models.Project) string { return p.ID })
	teamIndex := index(teams, func(t models.Team) string { return t.ID })
	ownerIndex := index(owners, func(u models.User) string { return u.ID })
	tagIndex := index(tags, func(t models.Tag) string { return t.ID })

	for i := range tasks {
		t := &tasks[i]
		t.Project = projectIndex[t.ProjectID]
		t.Team = teamIndex[t.TeamID]
		t.Owners = pick(ownerIndex, t.OwnerIDs)
		t.Tags = pick(tagIndex, t.TagIDs)
	}
	return nil
}

func index[T any](items []T, key func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[key(item)] = item
	}
	return m
}

func pick[T any](m map[string]T, ids []string) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := m[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
