package repository

import (
	"context"

	"github.com/workviyo/taskboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a team and links team.MemberIDs in a transaction
func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}
		if len(team.MemberIDs) == 0 {
			return nil
		}

		links := make([]models.TeamMember, len(team.MemberIDs))
		for i, memberID := range team.MemberIDs {
			links[i] = models.TeamMember{TeamID: team.ID, MemberID: memberID}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	}))
}

// FindByID finds a team by ID with members expanded
func (r *GormTeamRepository) FindByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Preload("Members").First(&team, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	syncMemberIDs(&team)
	return &team, nil
}

// FindByName finds a team by name
func (r *GormTeamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

// FindByIDs returns the teams with the given IDs without members
func (r *GormTeamRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Team, error) {
	teams := []models.Team{}
	if len(ids) == 0 {
		return teams, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// List returns all teams with members expanded
func (r *GormTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	teams := []models.Team{}
	if err := r.db.WithContext(ctx).Preload("Members").Order("name").Find(&teams).Error; err != nil {
		return nil, err
	}
	for i := range teams {
		syncMemberIDs(&teams[i])
	}
	return teams, nil
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(ctx context.Context, teamID, memberID string) error {
	link := models.TeamMember{TeamID: teamID, MemberID: memberID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func syncMemberIDs(team *models.Team) {
	team.MemberIDs = make([]string, len(team.Members))
	for i, m := range team.Members {
		team.MemberIDs[i] = m.ID
	}
}
