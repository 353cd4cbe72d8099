package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

// Valid reports whether s is one of the known statuses. Any status may be
// replaced by any other; there is no transition table.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	return p.Rank() > 0
}

// Rank orders priorities Low=1, Medium=2, High=3. Unknown values rank 0.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

type Task struct {
	ID             string       `gorm:"primarykey;type:varchar(36)" bson:"_id" json:"id"`
	Name           string       `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	ProjectID      string       `gorm:"type:varchar(36);not null;index" bson:"project" json:"projectId"`
	TeamID         string       `gorm:"type:varchar(36);not null;index" bson:"team" json:"teamId"`
	TimeToComplete float64      `gorm:"not null" bson:"timeToComplete" json:"timeToComplete"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" bson:"priority" json:"priority"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'To Do';index" bson:"status" json:"status"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"index" bson:"updatedAt" json:"updatedAt"`

	// Stored reference lists for document stores. SQL stores derive them
	// from task_owners and task_tags.
	OwnerIDs []string `gorm:"-" bson:"owners" json:"ownerIds"`
	TagIDs   []string `gorm:"-" bson:"tags" json:"tagIds"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" bson:"-" json:"project,omitempty"`
	Team    Team    `gorm:"foreignKey:TeamID" bson:"-" json:"team,omitempty"`
	Owners  []User  `gorm:"many2many:task_owners" bson:"-" json:"owners,omitempty"`
	Tags    []Tag   `gorm:"many2many:task_tags" bson:"-" json:"tags,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
