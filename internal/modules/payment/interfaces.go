package payment

import (
	"context"
	"time"

	"railbook/internal/domain"
	"railbook/internal/gateway/xendit"
	"railbook/internal/repository"
)

type Store interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ApplyStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error
	MarkExpired(ctx context.Context, bookingID string, expiredAt time.Time) (bool, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
	ListUnpaid(ctx context.Context) ([]repository.UnpaidOrder, error)
}

// InvoiceFetcher is the slice of the payment gateway reconciliation needs.
type InvoiceFetcher interface {
	GetInvoice(ctx context.Context, invoiceID string) (*xendit.Invoice, error)
}
