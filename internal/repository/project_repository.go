package repository

import (
	"context"

	"github.com/workviyo/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return translate(r.db.WithContext(ctx).Create(project).Error)
}

func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&project).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Project, error) {
	projects := []models.Project{}
	if len(ids) == 0 {
		return projects, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) List(ctx context.Context, name string) ([]models.Project, error) {
	projects := []models.Project{}
	query := r.db.WithContext(ctx).Order("created_at")
	if name != "" {
		query = query.Where("name = ?", name)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
