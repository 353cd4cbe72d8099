package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/taskquery"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrNameRequired          = errors.New("name is required")
	ErrOwnersRequired        = errors.New("at least one owner is required")
	ErrInvalidTimeToComplete = errors.New("timeToComplete must not be negative")
	ErrInvalidPriority       = errors.New("priority must be Low, Medium or High")
	ErrInvalidStatus         = errors.New("status must be To Do, In Progress, Completed or Blocked")
	ErrProjectNotFound       = errors.New("project not found")
	ErrTeamNotFound          = errors.New("team not found")
	ErrOwnerNotFound         = errors.New("one or more owners do not exist")
	ErrTagNotFound           = errors.New("one or more tags do not exist")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	projectRepo repository.ProjectRepository
	tagRepo     repository.TagRepository
	resolver    *taskquery.Resolver
}

// NewTaskService creates a new TaskService
func NewTaskService(repos *repository.Repositories) *TaskService {
	return &TaskService{
		taskRepo:    repos.Tasks,
		userRepo:    repos.Users,
		teamRepo:    repos.Teams,
		projectRepo: repos.Projects,
		tagRepo:     repos.Tags,
		resolver: taskquery.NewResolver(referenceLookup{
			users:    repos.Users,
			tags:     repos.Tags,
			teams:    repos.Teams,
			projects: repos.Projects,
		}),
	}
}

// ListTasksInput holds the raw query parameters of a task listing
type ListTasksInput struct {
	Owners       string
	Tags         string
	Team         string
	Project      string
	Status       string
	PrioritySort string
	DateSort     string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name           string
	ProjectID      string
	TeamID         string
	OwnerIDs       []string
	TimeToComplete float64
	Priority       models.TaskPriority
	Status         models.TaskStatus
	TagIDs         []string
}

// UpdateTaskInput represents a partial task update. Nil fields keep their
// stored value; OwnerIDs and TagIDs replace the stored lists when set.
type UpdateTaskInput struct {
	Name           *string
	ProjectID      *string
	TeamID         *string
	OwnerIDs       *[]string
	TimeToComplete *float64
	Priority       *models.TaskPriority
	Status         *models.TaskStatus
	TagIDs         *[]string
}

// ListTasks resolves the name based facets, queries the matching tasks and
// orders them by the requested sort directives.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	specs, err := taskquery.ParseSort(input.PrioritySort, input.DateSort)
	if err != nil {
		return nil, err
	}

	req := taskquery.ParseRequest(input.Owners, input.Tags, input.Team, input.Project, input.Status)
	resolved, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task filter: %w", err)
	}

	filter := taskquery.Build(req, resolved)
	if filter.NoMatch {
		return []models.Task{}, nil
	}

	tasks, err := s.taskRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	taskquery.Order(tasks, specs)
	return tasks, nil
}

// GetTask returns a task with its references expanded
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input, checks that every referenced entity exists
// and stores the task.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	ownerIDs := unique(input.OwnerIDs)
	if len(ownerIDs) == 0 {
		return nil, ErrOwnersRequired
	}
	if input.TimeToComplete < 0 {
		return nil, ErrInvalidTimeToComplete
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	} else if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	tagIDs := unique(input.TagIDs)
	if err := s.ensureProject(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := s.ensureTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}
	if err := s.ensureOwners(ctx, ownerIDs); err != nil {
		return nil, err
	}
	if err := s.ensureTags(ctx, tagIDs); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:           name,
		ProjectID:      input.ProjectID,
		TeamID:         input.TeamID,
		OwnerIDs:       ownerIDs,
		TimeToComplete: input.TimeToComplete,
		Priority:       input.Priority,
		Status:         input.Status,
		TagIDs:         tagIDs,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateTask applies a partial update. Owners and tags are replaced as a
// whole; AddOwners merges owners instead.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		task.Name = name
	}
	if input.TimeToComplete != nil {
		if *input.TimeToComplete < 0 {
			return nil, ErrInvalidTimeToComplete
		}
		task.TimeToComplete = *input.TimeToComplete
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		if err := s.ensureProject(ctx, *input.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = *input.ProjectID
		task.Project = models.Project{}
	}
	if input.TeamID != nil && *input.TeamID != task.TeamID {
		if err := s.ensureTeam(ctx, *input.TeamID); err != nil {
			return nil, err
		}
		task.TeamID = *input.TeamID
		task.Team = models.Team{}
	}
	if input.OwnerIDs != nil {
		ownerIDs := unique(*input.OwnerIDs)
		if len(ownerIDs) == 0 {
			return nil, ErrOwnersRequired
		}
		if err := s.ensureOwners(ctx, ownerIDs); err != nil {
			return nil, err
		}
		task.OwnerIDs = ownerIDs
		task.Owners = nil
	}
	if input.TagIDs != nil {
		tagIDs := unique(*input.TagIDs)
		if err := s.ensureTags(ctx, tagIDs); err != nil {
			return nil, err
		}
		task.TagIDs = tagIDs
		task.Tags = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, id)
}

// AddOwners merges owners into a task, ignoring ones it already has
func (s *TaskService) AddOwners(ctx context.Context, id string, ownerIDs []string) (*models.Task, error) {
	ownerIDs = unique(ownerIDs)
	if len(ownerIDs) == 0 {
		return nil, ErrOwnersRequired
	}
	if _, err := s.GetTask(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureOwners(ctx, ownerIDs); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AddOwners(ctx, id, ownerIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to add owners: %w", err)
	}

	return s.GetTask(ctx, id)
}

// DeleteTask removes a task and returns it as it was before deletion
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ensureProject(ctx context.Context, id string) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}

func (s *TaskService) ensureTeam(ctx context.Context, id string) error {
	if _, err := s.teamRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}
	return nil
}

// ensureOwners expects ids without duplicates
func (s *TaskService) ensureOwners(ctx context.Context, ids []string) error {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify owners: %w", err)
	}
	if len(users) != len(ids) {
		return ErrOwnerNotFound
	}
	return nil
}

// ensureTags expects ids without duplicates
func (s *TaskService) ensureTags(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify tags: %w", err)
	}
	if len(tags) != len(ids) {
		return ErrTagNotFound
	}
	return nil
}

// unique drops blank and repeated ids, keeping first occurrences in order
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
