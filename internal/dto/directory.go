package dto

import (
	"time"

	"github.com/workviyo/taskboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamDTO represents a team with its members expanded
type TeamDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []RefDTO `json:"members"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

func ToTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		Members:     make([]RefDTO, len(team.Members)),
	}
	for i, member := range team.Members {
		dto.Members[i] = RefDTO{ID: member.ID, Name: member.Name}
	}
	return dto
}

func ToTeamDTOs(teams []models.Team) []TeamDTO {
	items := make([]TeamDTO, len(teams))
	for i, team := range teams {
		items[i] = ToTeamDTO(team)
	}
	return items
}

func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}

// ToRefDTOs converts named entities such as tags and members to references
func ToRefDTOs[T any](items []T, ref func(T) RefDTO) []RefDTO {
	refs := make([]RefDTO, len(items))
	for i, item := range items {
		refs[i] = ref(item)
	}
	return refs
}

func TagRef(tag models.Tag) RefDTO {
	return RefDTO{ID: tag.ID, Name: tag.Name}
}

func MemberRef(member models.Member) RefDTO {
	return RefDTO{ID: member.ID, Name: member.Name}
}
