package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
)

var (
	ErrTeamNameTaken  = errors.New("team name already exists")
	ErrMemberNotFound = errors.New("one or more members do not exist")
)

// TeamService handles team business logic
type TeamService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, memberRepo repository.MemberRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
	}
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name        string
	Description string
	MemberIDs   []string
}

// CreateTeam creates a team with an initial set of existing members
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.teamRepo.FindByName(ctx, name); err == nil {
		return nil, ErrTeamNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}

	memberIDs := unique(input.MemberIDs)
	if err := s.ensureMembers(ctx, memberIDs); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		MemberIDs:   memberIDs,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.getTeam(ctx, team.ID)
}

// ListTeams returns all teams with their members
func (s *TeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// AddMember adds one member to a team. Adding a current member changes
// nothing.
func (s *TeamService) AddMember(ctx context.Context, teamID, memberID string) (*models.Team, error) {
	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.ensureMembers(ctx, []string{memberID}); err != nil {
		return nil, err
	}

	if err := s.teamRepo.AddMember(ctx, teamID, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return s.getTeam(ctx, teamID)
}

func (s *TeamService) getTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func (s *TeamService) ensureMembers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	members, err := s.memberRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify members: %w", err)
	}
	if len(members) != len(ids) {
		return ErrMemberNotFound
	}
	return nil
}
