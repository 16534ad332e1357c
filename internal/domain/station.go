package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Station struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Code      string         `gorm:"type:varchar(16);not null;index" json:"code"`
	Latitude  string         `gorm:"type:varchar(32)" json:"latitude"`
	Longitude string         `gorm:"type:varchar(32)" json:"longitude"`
	City      string         `gorm:"type:varchar(128);index" json:"city"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Station) TableName() string { return "stations" }

func (s *Station) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
