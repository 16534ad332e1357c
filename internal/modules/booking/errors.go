package booking

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrTrainFull        = errors.New("train is full")
	ErrInvalidPassenger = errors.New("invalid passenger data")
	ErrUnpaidOrder      = errors.New("user has an outstanding unpaid order")
	ErrPaymentGateway   = errors.New("payment gateway error")
	ErrPersistence      = errors.New("failed to persist payment record")
	ErrForbidden        = errors.New("not the booking owner")
	ErrPaidImmutable    = errors.New("paid bookings cannot be changed")
)
