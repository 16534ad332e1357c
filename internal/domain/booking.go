package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingPaid     BookingStatus = "paid"
	BookingCanceled BookingStatus = "canceled"
	BookingFailed   BookingStatus = "failed"
)

type PassengerStatus string

const (
	PassengerAdult PassengerStatus = "adult"
	PassengerChild PassengerStatus = "child"
)

func (s PassengerStatus) Valid() bool {
	return s == PassengerAdult || s == PassengerChild
}

type Booking struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string         `gorm:"type:uuid;not null;index" json:"user_id"`
	ScheduleID     string         `gorm:"type:uuid;not null;index" json:"schedule_id"`
	TotalPrice     float64        `gorm:"not null" json:"total_price"`
	Status         BookingStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	ReasonCanceled *string        `gorm:"type:varchar(255)" json:"reason_canceled,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BookingPassenger seat numbers are labels derived from the schedule's seat
// counter at booking time, not positions in a stable seat map.
type BookingPassenger struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  string          `gorm:"type:uuid;not null;index" json:"booking_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	IDNumber   string          `gorm:"type:varchar(64);not null" json:"id_number"`
	SeatNumber int             `gorm:"not null" json:"seat_number"`
	Status     PassengerStatus `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (BookingPassenger) TableName() string { return "booking_passengers" }

func (p *BookingPassenger) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
