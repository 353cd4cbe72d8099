package dto

import (
	"time"

	"github.com/workviyo/taskboard-api/internal/models"
)

// RefDTO is an expanded reference to another entity
type RefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Project        RefDTO              `json:"project"`
	Team           RefDTO              `json:"team"`
	Owners         []RefDTO            `json:"owners"`
	TimeToComplete float64             `json:"timeToComplete"`
	Priority       models.TaskPriority `json:"priority"`
	Status         models.TaskStatus   `json:"status"`
	Tags           []RefDTO            `json:"tags"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO. References that were not
// expanded keep their identifier with an empty name.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Name:           task.Name,
		Project:        RefDTO{ID: task.ProjectID, Name: task.Project.Name},
		Team:           RefDTO{ID: task.TeamID, Name: task.Team.Name},
		Owners:         make([]RefDTO, 0, len(task.OwnerIDs)),
		TimeToComplete: task.TimeToComplete,
		Priority:       task.Priority,
		Status:         task.Status,
		Tags:           make([]RefDTO, 0, len(task.TagIDs)),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	owners := make(map[string]string, len(task.Owners))
	for _, owner := range task.Owners {
		owners[owner.ID] = owner.Name
	}
	for _, id := range task.OwnerIDs {
		dto.Owners = append(dto.Owners, RefDTO{ID: id, Name: owners[id]})
	}

	tags := make(map[string]string, len(task.Tags))
	for _, tag := range task.Tags {
		tags[tag.ID] = tag.Name
	}
	for _, id := range task.TagIDs {
		dto.Tags = append(dto.Tags, RefDTO{ID: id, Name: tags[id]})
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
