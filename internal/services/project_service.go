package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
)

var ErrProjectNameTaken = errors.New("project name already exists")

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.TaskStatus
}

// CreateProject creates a project with a unique name
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.projectRepo.FindByName(ctx, name); err == nil {
		return nil, ErrProjectNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProjectNameTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// ListProjects returns all projects, or only the one named name
func (s *ProjectService) ListProjects(ctx context.Context, name string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
