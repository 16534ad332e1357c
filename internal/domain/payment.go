package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentExpired PaymentStatus = "expired"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is created in the same transaction as its booking, immediately
// after the gateway invoice is issued. PaymentID and PaymentURL come from
// the gateway.
type Payment struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID   string         `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Status      PaymentStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentID   string         `gorm:"type:varchar(128);not null;index" json:"payment_id"`
	PaymentURL  string         `gorm:"type:text" json:"payment_url"`
	PaymentType string         `gorm:"type:varchar(32);not null" json:"payment_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
