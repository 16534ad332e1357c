package payment

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrGateway         = errors.New("payment gateway error")
)
