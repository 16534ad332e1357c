package repository

import (
	"context"
	"errors"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

// BookingDetail is a booking with everything a caller might need expanded:
// passengers, payment, schedule, train, route and both stations. Loaded with
// explicit queries instead of lazy association fetching.
type BookingDetail struct {
	Booking     domain.Booking             `json:"booking"`
	Passengers  []domain.BookingPassenger  `json:"passengers"`
	Payment     *domain.Payment            `json:"payment,omitempty"`
	Schedule    *domain.Schedule           `json:"schedule,omitempty"`
	Train       *domain.Train              `json:"train,omitempty"`
	Route       *domain.Route              `json:"route,omitempty"`
	Origin      *domain.Station            `json:"origin,omitempty"`
	Destination *domain.Station            `json:"destination,omitempty"`
}

// BookingStore bundles every query the booking workflow touches, so the whole
// workflow can run inside one transaction.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// Transaction runs fn against a store bound to a database transaction.
// Returning an error rolls everything back.
func (s *BookingStore) Transaction(ctx context.Context, fn func(tx *BookingStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingStore{db: tx})
	})
}

// GetScheduleForUpdate loads the schedule row locked for the duration of the
// surrounding transaction, serializing concurrent bookings against it.
func (s *BookingStore) GetScheduleForUpdate(ctx context.Context, id string) (*domain.Schedule, error) {
	var sched domain.Schedule
	if err := forUpdate(s.db.WithContext(ctx)).First(&sched, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *BookingStore) CreateBooking(ctx context.Context, b *domain.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *BookingStore) CreatePassengers(ctx context.Context, ps []domain.BookingPassenger) error {
	if len(ps) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&ps).Error
}

func (s *BookingStore) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *BookingStore) UpdateBookingTotal(ctx context.Context, bookingID string, total float64) error {
	return s.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Update("total_price", total).Error
}

// AddSeatAvailable applies a (typically negative) delta to the schedule's
// seat counter.
func (s *BookingStore) AddSeatAvailable(ctx context.Context, scheduleID string, delta int) error {
	return s.db.WithContext(ctx).Model(&domain.Schedule{}).
		Where("id = ?", scheduleID).
		Update("seat_available", gorm.Expr("seat_available + ?", delta)).Error
}

// HasUnpaidOrder reports whether the user has a pending booking whose payment
// is also still pending. A booking mid-creation has no payment row yet and is
// not counted.
func (s *BookingStore) HasUnpaidOrder(ctx context.Context, userID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Booking{}).
		Joins("JOIN payments ON payments.booking_id = bookings.id AND payments.deleted_at IS NULL").
		Where("bookings.user_id = ? AND bookings.status = ? AND payments.status = ?",
			userID, domain.BookingPending, domain.PaymentPending).
		Count(&n).Error
	return n > 0, err
}

func (s *BookingStore) GetBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) GetBookingForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := forUpdate(s.db.WithContext(ctx)).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) SaveBooking(ctx context.Context, b *domain.Booking) error {
	return s.db.WithContext(ctx).Save(b).Error
}

func (s *BookingStore) DeleteBooking(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *BookingStore) GetPassengers(ctx context.Context, bookingID string) ([]domain.BookingPassenger, error) {
	var ps []domain.BookingPassenger
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("seat_number DESC").
		Find(&ps).Error
	return ps, err
}

func (s *BookingStore) GetPayment(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var p domain.Payment
	err := s.db.WithContext(ctx).First(&p, "booking_id = ?", bookingID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadDetail assembles the full composed view of one booking.
func (s *BookingStore) LoadDetail(ctx context.Context, bookingID string) (*BookingDetail, error) {
	b, err := s.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, *b)
}

func (s *BookingStore) ListAll(ctx context.Context, limit, offset int) ([]BookingDetail, int64, error) {
	var bookings []domain.Booking
	var total int64

	q := s.db.WithContext(ctx).Model(&domain.Booking{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	out, err := s.expandAll(ctx, bookings)
	return out, total, err
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	var bookings []domain.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, bookings)
}

func (s *BookingStore) expandAll(ctx context.Context, bookings []domain.Booking) ([]BookingDetail, error) {
	out := make([]BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		d, err := s.expand(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *BookingStore) expand(ctx context.Context, b domain.Booking) (*BookingDetail, error) {
	d := &BookingDetail{Booking: b}

	ps, err := s.GetPassengers(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	d.Passengers = ps

	var payment domain.Payment
	err = s.db.WithContext(ctx).First(&payment, "booking_id = ?", b.ID).Error
	switch {
	case err == nil:
		d.Payment = &payment
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var sched domain.Schedule
	if err := s.db.WithContext(ctx).Unscoped().First(&sched, "id = ?", b.ScheduleID).Error; err != nil {
		return nil, err
	}
	d.Schedule = &sched

	var train domain.Train
	if err := s.db.WithContext(ctx).Unscoped().First(&train, "id = ?", sched.TrainID).Error; err != nil {
		return nil, err
	}
	d.Train = &train

	var route domain.Route
	if err := s.db.WithContext(ctx).Unscoped().First(&route, "id = ?", sched.RouteID).Error; err != nil {
		return nil, err
	}
	d.Route = &route

	var origin, destination domain.Station
	if err := s.db.WithContext(ctx).Unscoped().First(&origin, "id = ?", route.OriginID).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Unscoped().First(&destination, "id = ?", route.DestinationID).Error; err != nil {
		return nil, err
	}
	d.Origin = &origin
	d.Destination = &destination

	return d, nil
}
