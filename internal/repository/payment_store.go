package repository

import (
	"context"
	"time"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

// UnpaidOrder pairs a pending booking with its pending payment for the
// reconciliation batch.
type UnpaidOrder struct {
	BookingID         string
	ExternalPaymentID string
}

type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := s.db.WithContext(ctx).First(&p, "payment_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PaymentStore) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var b domain.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyStatus sets the payment status and derives the booking status from it
// in a single transaction: paid stays paid, expired and failed cancel the
// booking.
func (s *PaymentStore) ApplyStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := forUpdate(tx).First(&p, "id = ?", paymentID).Error; err != nil {
			return err
		}

		if err := tx.Model(&p).Update("status", status).Error; err != nil {
			return err
		}

		var bookingStatus domain.BookingStatus
		switch status {
		case domain.PaymentPaid:
			bookingStatus = domain.BookingPaid
		case domain.PaymentExpired, domain.PaymentFailed:
			bookingStatus = domain.BookingCanceled
		default:
			return nil
		}

		return tx.Model(&domain.Booking{}).
			Where("id = ?", p.BookingID).
			Update("status", bookingStatus).Error
	})
}

// MarkExpired cancels the booking and expires its payment, stamping both rows
// with the gateway's expiry date rather than wall-clock now. Returns false
// without touching anything when the payment already left pending, which
// makes repeated reconciliation a no-op.
func (s *PaymentStore) MarkExpired(ctx context.Context, bookingID string, expiredAt time.Time) (bool, error) {
	transitioned := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Payment{}).
			Where("booking_id = ? AND status = ?", bookingID, domain.PaymentPending).
			UpdateColumns(map[string]interface{}{
				"status":     domain.PaymentExpired,
				"updated_at": expiredAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		transitioned = true
		return tx.Model(&domain.Booking{}).
			Where("id = ?", bookingID).
			UpdateColumns(map[string]interface{}{
				"status":     domain.BookingCanceled,
				"updated_at": expiredAt,
			}).Error
	})
	return transitioned, err
}

// UpdateBookingStatus is used by the gateway redirect handlers.
func (s *PaymentStore) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUnpaid returns every pending booking whose payment is also pending.
func (s *PaymentStore) ListUnpaid(ctx context.Context) ([]UnpaidOrder, error) {
	var rows []struct {
		BookingID string
		PaymentID string
	}
	err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("bookings.id AS booking_id, payments.payment_id AS payment_id").
		Joins("JOIN payments ON payments.booking_id = bookings.id AND payments.deleted_at IS NULL").
		Where("bookings.status = ? AND payments.status = ?", domain.BookingPending, domain.PaymentPending).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]UnpaidOrder, 0, len(rows))
	for _, r := range rows {
		out = append(out, UnpaidOrder{BookingID: r.BookingID, ExternalPaymentID: r.PaymentID})
	}
	return out, nil
}
