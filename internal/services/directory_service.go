package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
)

var ErrTagNameTaken = errors.New("tag already exists")

// DirectoryService serves the plain listings of users, members and tags
type DirectoryService struct {
	userRepo   repository.UserRepository
	memberRepo repository.MemberRepository
	tagRepo    repository.TagRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(repos *repository.Repositories) *DirectoryService {
	return &DirectoryService{
		userRepo:   repos.Users,
		memberRepo: repos.Members,
		tagRepo:    repos.Tags,
	}
}

func (s *DirectoryService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *DirectoryService) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *DirectoryService) CreateMember(ctx context.Context, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	member := &models.Member{Name: name}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

func (s *DirectoryService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag with a unique name
func (s *DirectoryService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.tagRepo.FindByName(ctx, name); err == nil {
		return nil, ErrTagNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagNameTaken
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}
