package booking

import (
	"railbook/internal/domain"
)

type PassengerInput struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	IDNumber string `json:"id_number" binding:"required,max=255"`
	Status   string `json:"status" binding:"required,oneof=adult child"`
}

type CreateBookingRequest struct {
	ScheduleID string           `json:"schedule_id" binding:"required,uuid"`
	Passengers []PassengerInput `json:"passengers" binding:"required,min=1,dive"`
}

type UpdateBookingRequest struct {
	Status         string  `json:"status" binding:"omitempty,oneof=pending canceled"`
	ReasonCanceled *string `json:"reason_canceled" binding:"omitempty,max=255"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

// CreateBookingResult is what the creation endpoint returns: the booking, its
// passengers and the payment carrying the invoice URL the client must follow.
type CreateBookingResult struct {
	Booking    domain.Booking            `json:"booking"`
	Passengers []domain.BookingPassenger `json:"passengers"`
	Payment    domain.Payment            `json:"payment"`
}
