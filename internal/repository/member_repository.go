package repository

import (
	"context"

	"github.com/workviyo/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

func (r *GormMemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *GormMemberRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Member, error) {
	members := []models.Member{}
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *GormMemberRepository) List(ctx context.Context) ([]models.Member, error) {
	members := []models.Member{}
	if err := r.db.WithContext(ctx).Order("name").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
