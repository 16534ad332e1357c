package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule carries a mutable seat counter. SeatAvailable starts at the
// train's capacity and only ever decreases as bookings consume seats.
type Schedule struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	TrainID       string         `gorm:"type:uuid;not null;index" json:"train_id"`
	RouteID       string         `gorm:"type:uuid;not null;index" json:"route_id"`
	DepartureTime time.Time      `gorm:"not null;index" json:"departure_time"`
	ArrivalTime   time.Time      `gorm:"not null" json:"arrival_time"`
	Price         float64        `gorm:"not null" json:"price"`
	SeatAvailable int            `gorm:"not null" json:"seat_available"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Schedule) TableName() string { return "schedules" }

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
