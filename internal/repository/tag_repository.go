package repository

import (
	"context"

	"github.com/workviyo/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return translate(r.db.WithContext(ctx).Create(tag).Error)
}

func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) FindByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(names) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
