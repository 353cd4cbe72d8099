package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          string `gorm:"primarykey;type:varchar(36)" bson:"_id" json:"id"`
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" bson:"name" json:"name"`
	Description string `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`

	// MemberIDs is the stored form in document stores; SQL stores keep
	// membership in team_members.
	MemberIDs []string `gorm:"-" bson:"members" json:"-"`

	// Relations
	Members []Member `gorm:"many2many:team_members" bson:"-" json:"members"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember links a member to a team.
type TeamMember struct {
	TeamID   string `gorm:"primarykey;type:varchar(36)"`
	MemberID string `gorm:"primarykey;type:varchar(36)"`
}
