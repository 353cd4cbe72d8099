package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID   string `gorm:"primarykey;type:varchar(36)" bson:"_id" json:"id"`
	Name string `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
