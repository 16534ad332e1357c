package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Route struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	OriginID      string         `gorm:"type:uuid;not null;index" json:"origin_id"`
	DestinationID string         `gorm:"type:uuid;not null;index" json:"destination_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Route) TableName() string { return "routes" }

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
