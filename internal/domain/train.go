package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainClass string

const (
	TrainClassExecutive  TrainClass = "executive"
	TrainClassBusiness   TrainClass = "business"
	TrainClassEconomy    TrainClass = "economy"
	TrainClassNonEconomy TrainClass = "non-economy"
)

func (c TrainClass) Valid() bool {
	switch c {
	case TrainClassExecutive, TrainClassBusiness, TrainClassEconomy, TrainClassNonEconomy:
		return true
	}
	return false
}

// Train capacity is copied into Schedule.SeatAvailable when a schedule is
// created; trains and schedules do not share a live capacity reference.
type Train struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Class     TrainClass     `gorm:"type:varchar(32);not null" json:"class"`
	Code      string         `gorm:"type:varchar(16);not null;index" json:"code"`
	Capacity  int            `gorm:"not null" json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Train) TableName() string { return "trains" }

func (t *Train) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
