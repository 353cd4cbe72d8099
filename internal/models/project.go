package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string     `gorm:"primarykey;type:varchar(36)" bson:"_id" json:"id"`
	Name        string     `gorm:"type:varchar(255);uniqueIndex;not null" bson:"name" json:"name"`
	Description string     `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'To Do'" bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
