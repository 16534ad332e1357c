package payment

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"railbook/internal/domain"
)

// BatchResult tallies one reconciliation sweep over unpaid orders.
type BatchResult struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Expired   int `json:"expired"`
	Errors    int `json:"errors"`
}

type Service struct {
	store   Store
	gateway InvoiceFetcher
	logger  *logrus.Logger
}

func NewService(store Store, gateway InvoiceFetcher, logger *logrus.Logger) *Service {
	return &Service{store: store, gateway: gateway, logger: logger}
}

// UpdatePaymentStatus applies a gateway-reported status to the payment with
// the given external id and derives the booking status from it. A missing
// payment is logged and ignored.
func (s *Service) UpdatePaymentStatus(ctx context.Context, externalID string, status domain.PaymentStatus) error {
	p, err := s.store.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithField("payment_id", externalID).Warn("payment not found for status update")
			return nil
		}
		return err
	}

	return s.store.ApplyStatus(ctx, p.ID, status)
}

// UpdateExpiredInvoice asks the gateway for the invoice's current state and,
// if it reports EXPIRED, cancels the booking and expires the payment stamped
// with the gateway's expiry date. Returns whether a transition happened;
// reconciling an already-reconciled invoice is a no-op.
func (s *Service) UpdateExpiredInvoice(ctx context.Context, bookingID, externalPaymentID string) (bool, error) {
	invoice, err := s.gateway.GetInvoice(ctx, externalPaymentID)
	if err != nil {
		s.logger.WithError(err).WithField("booking_id", bookingID).Error("invoice lookup failed")
		return false, err
	}

	if invoice.Status != "EXPIRED" {
		return false, nil
	}

	return s.store.MarkExpired(ctx, bookingID, invoice.ExpiryDate)
}

// CheckUnpaidOrders sweeps every pending booking with a pending payment. A
// failure on one record is logged and counted but never aborts the rest of
// the batch.
func (s *Service) CheckUnpaidOrders(ctx context.Context) (*BatchResult, error) {
	unpaid, err := s.store.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Total: len(unpaid)}
	s.logger.WithField("count", result.Total).Info("checking unpaid orders")

	for _, order := range unpaid {
		expired, err := s.UpdateExpiredInvoice(ctx, order.BookingID, order.ExternalPaymentID)
		if err != nil {
			result.Errors++
			s.logger.WithError(err).WithField("booking_id", order.BookingID).Error("failed to process unpaid order")
			continue
		}
		result.Processed++
		if expired {
			result.Expired++
			s.logger.WithField("booking_id", order.BookingID).Info("booking marked as expired")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"processed": result.Processed,
		"expired":   result.Expired,
		"errors":    result.Errors,
	}).Info("unpaid order check finished")

	return result, nil
}

// MarkRedirectResult handles the gateway's success/failure redirects.
func (s *Service) MarkRedirectResult(ctx context.Context, bookingID string, succeeded bool) (*domain.Booking, error) {
	status := domain.BookingPaid
	if !succeeded {
		status = domain.BookingFailed
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return s.store.GetBooking(ctx, bookingID)
}
