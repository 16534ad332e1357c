package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"railbook/internal/domain"
	"railbook/internal/gateway/xendit"
	"railbook/internal/repository"
)

type Service struct {
	store           *repository.BookingStore
	users           UserReader
	gateway         InvoiceCreator
	logger          *logrus.Logger
	baseURL         string
	invoiceDuration time.Duration
}

func NewService(
	store *repository.BookingStore,
	users UserReader,
	gateway InvoiceCreator,
	logger *logrus.Logger,
	baseURL string,
	invoiceDuration time.Duration,
) *Service {
	if invoiceDuration <= 0 {
		invoiceDuration = time.Hour
	}
	return &Service{
		store:           store,
		users:           users,
		gateway:         gateway,
		logger:          logger,
		baseURL:         baseURL,
		invoiceDuration: invoiceDuration,
	}
}

// Create runs the whole booking workflow in one transaction with the
// schedule row locked: seat guard, booking + passengers, unpaid-order check,
// gateway invoice, payment record, seat decrement. Any failure rolls the
// entire thing back, so a failed attempt leaves no trace.
func (s *Service) Create(ctx context.Context, userID string, req CreateBookingRequest) (*CreateBookingResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingResult
	err = s.store.Transaction(ctx, func(tx *repository.BookingStore) error {
		sched, err := tx.GetScheduleForUpdate(ctx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		// Availability is checked against the full passenger count, but the
		// counter is later decremented by adult count only. That asymmetry is
		// inherited behavior kept pending product clarification.
		seatNow := sched.SeatAvailable
		if seatNow <= 0 || seatNow < len(req.Passengers) {
			return ErrTrainFull
		}

		b := &domain.Booking{
			UserID:     userID,
			ScheduleID: sched.ID,
			TotalPrice: 0,
			Status:     domain.BookingPending,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		var totalPrice float64
		adultCount := 0
		passengers := make([]domain.BookingPassenger, 0, len(req.Passengers))
		for _, p := range req.Passengers {
			status := domain.PassengerStatus(p.Status)
			if p.Name == "" || p.IDNumber == "" || !status.Valid() {
				return ErrInvalidPassenger
			}

			passengers = append(passengers, domain.BookingPassenger{
				BookingID:  b.ID,
				Name:       p.Name,
				IDNumber:   p.IDNumber,
				SeatNumber: seatNow,
				Status:     status,
			})
			seatNow--

			if status == domain.PassengerAdult {
				adultCount++
				totalPrice += sched.Price
			}
		}

		unpaid, err := tx.HasUnpaidOrder(ctx, userID)
		if err != nil {
			return err
		}
		if unpaid {
			return ErrUnpaidOrder
		}

		invoice, err := s.gateway.CreateInvoice(ctx, xendit.CreateInvoiceRequest{
			ExternalID:      b.ID,
			Amount:          totalPrice,
			Description:     fmt.Sprintf("Train ticket order #%s", b.ID),
			Currency:        "IDR",
			InvoiceDuration: int(s.invoiceDuration.Seconds()),
			Customer: &xendit.InvoiceCustomer{
				GivenNames: user.Name,
				Email:      user.Email,
			},
			SuccessRedirectURL: s.baseURL + "/payment/success/" + b.ID,
			FailureRedirectURL: s.baseURL + "/payment/failure/" + b.ID,
		})
		if err != nil {
			s.logger.WithError(err).WithField("booking_id", b.ID).Error("invoice creation failed")
			return ErrPaymentGateway
		}

		payment := &domain.Payment{
			BookingID:   b.ID,
			Amount:      totalPrice,
			Status:      domain.PaymentPending,
			PaymentID:   invoice.ID,
			PaymentURL:  invoice.InvoiceURL,
			PaymentType: "xendit",
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			// The invoice already exists at the gateway with no local record;
			// this log line is the trail for manual reconciliation.
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id": b.ID,
				"invoice_id": invoice.ID,
			}).Error("payment record creation failed after invoice was issued")
			return ErrPersistence
		}

		if err := tx.UpdateBookingTotal(ctx, b.ID, totalPrice); err != nil {
			return err
		}
		b.TotalPrice = totalPrice

		if err := tx.CreatePassengers(ctx, passengers); err != nil {
			return err
		}

		if err := tx.AddSeatAvailable(ctx, sched.ID, -adultCount); err != nil {
			return err
		}

		result = &CreateBookingResult{
			Booking:    *b,
			Passengers: passengers,
			Payment:    *payment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  result.Booking.ID,
		"user_id":     userID,
		"total_price": result.Booking.TotalPrice,
	}).Info("booking created")

	return result, nil
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]repository.BookingDetail, int64, error) {
	return s.store.ListAll(ctx, limit, offset)
}

func (s *Service) History(ctx context.Context, userID string) ([]repository.BookingDetail, error) {
	return s.store.ListByUser(ctx, userID)
}

// Get returns the booking detail, or ErrBookingNotFound when it does not
// exist or belongs to another user. Non-owners cannot probe existence.
func (s *Service) Get(ctx context.Context, userID, bookingID string) (*repository.BookingDetail, error) {
	d, err := s.store.LoadDetail(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if d.Booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, userID, bookingID string, req UpdateBookingRequest) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.store.Transaction(ctx, func(tx *repository.BookingStore) error {
		b, err := tx.GetBookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.UserID != userID {
			return ErrForbidden
		}
		if b.Status == domain.BookingPaid {
			return ErrPaidImmutable
		}

		if req.Status != "" {
			b.Status = domain.BookingStatus(req.Status)
		}
		if req.ReasonCanceled != nil {
			b.ReasonCanceled = req.ReasonCanceled
		}

		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, bookingID string) error {
	return s.store.Transaction(ctx, func(tx *repository.BookingStore) error {
		b, err := tx.GetBookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.UserID != userID {
			return ErrForbidden
		}
		if b.Status == domain.BookingPaid {
			return ErrPaidImmutable
		}

		return tx.DeleteBooking(ctx, bookingID)
	})
}
