package booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"railbook/internal/database"
	"railbook/internal/domain"
	"railbook/internal/gateway/xendit"
	"railbook/internal/repository"
)

type MockInvoiceCreator struct {
	mock.Mock
}

func (m *MockInvoiceCreator) CreateInvoice(ctx context.Context, req xendit.CreateInvoiceRequest) (*xendit.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xendit.Invoice), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, gateway *MockInvoiceCreator, users *MockUserReader) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(repository.NewBookingStore(db), users, gateway, logger, "http://localhost:8080", time.Hour)
}

type fixture struct {
	user     domain.User
	train    domain.Train
	schedule domain.Schedule
}

func seedFixture(t *testing.T, db *gorm.DB, seats int, price float64) fixture {
	t.Helper()

	user := domain.User{Name: "Adi", Email: "adi@gmail.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)

	origin := domain.Station{Name: "Stasiun Gambir", Code: "GMR", City: "Jakarta"}
	destination := domain.Station{Name: "Stasiun Bandung", Code: "BD", City: "Bandung"}
	require.NoError(t, db.Create(&origin).Error)
	require.NoError(t, db.Create(&destination).Error)

	train := domain.Train{Name: "Argo Bromo Anggrek", Code: "ABA-EXE", Class: domain.TrainClassExecutive, Capacity: seats}
	require.NoError(t, db.Create(&train).Error)

	route := domain.Route{OriginID: origin.ID, DestinationID: destination.ID}
	require.NoError(t, db.Create(&route).Error)

	departure := time.Now().Add(48 * time.Hour)
	schedule := domain.Schedule{
		TrainID:       train.ID,
		RouteID:       route.ID,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(3 * time.Hour),
		Price:         price,
		SeatAvailable: seats,
	}
	require.NoError(t, db.Create(&schedule).Error)

	return fixture{user: user, train: train, schedule: schedule}
}

func TestCreate_TwoAdultsOneChild(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 3, 100000)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	gateway := &MockInvoiceCreator{}
	gateway.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(req xendit.CreateInvoiceRequest) bool {
		return req.Amount == 200000 && req.Currency == "IDR"
	})).Return(&xendit.Invoice{ID: "inv-1", InvoiceURL: "https://checkout.example/inv-1", Status: "PENDING"}, nil)

	svc := newTestService(t, db, gateway, users)

	result, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: fx.schedule.ID,
		Passengers: []PassengerInput{
			{Name: "Adi", IDNumber: "3501", Status: "adult"},
			{Name: "Dina", IDNumber: "3502", Status: "adult"},
			{Name: "Budi", IDNumber: "3503", Status: "child"},
		},
	})
	require.NoError(t, err)

	// Two adults pay, the child rides free.
	assert.Equal(t, float64(200000), result.Booking.TotalPrice)
	assert.Equal(t, domain.BookingPending, result.Booking.Status)
	assert.Len(t, result.Passengers, 3)
	assert.Equal(t, "inv-1", result.Payment.PaymentID)
	assert.Equal(t, "https://checkout.example/inv-1", result.Payment.PaymentURL)
	assert.Equal(t, domain.PaymentPending, result.Payment.Status)

	// Seats are assigned descending from the available count.
	assert.Equal(t, 3, result.Passengers[0].SeatNumber)
	assert.Equal(t, 2, result.Passengers[1].SeatNumber)
	assert.Equal(t, 1, result.Passengers[2].SeatNumber)

	// Only the two adults consume the counter.
	var sched domain.Schedule
	require.NoError(t, db.First(&sched, "id = ?", fx.schedule.ID).Error)
	assert.Equal(t, 1, sched.SeatAvailable)

	gateway.AssertExpectations(t)
}

func TestCreate_GatewayFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 3, 100000)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	gateway := &MockInvoiceCreator{}
	gateway.On("CreateInvoice", mock.Anything, mock.Anything).Return(nil, errors.New("gateway down"))

	svc := newTestService(t, db, gateway, users)

	_, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: fx.schedule.ID,
		Passengers: []PassengerInput{{Name: "Adi", IDNumber: "3501", Status: "adult"}},
	})
	assert.ErrorIs(t, err, ErrPaymentGateway)

	// The whole attempt must leave no trace.
	var bookings, passengers, payments int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookings).Error)
	require.NoError(t, db.Model(&domain.BookingPassenger{}).Count(&passengers).Error)
	require.NoError(t, db.Model(&domain.Payment{}).Count(&payments).Error)
	assert.Zero(t, bookings)
	assert.Zero(t, passengers)
	assert.Zero(t, payments)

	var sched domain.Schedule
	require.NoError(t, db.First(&sched, "id = ?", fx.schedule.ID).Error)
	assert.Equal(t, 3, sched.SeatAvailable)
}

func TestCreate_TrainFull(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 2, 100000)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	gateway := &MockInvoiceCreator{}
	svc := newTestService(t, db, gateway, users)

	_, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: fx.schedule.ID,
		Passengers: []PassengerInput{
			{Name: "Adi", IDNumber: "1", Status: "adult"},
			{Name: "Dina", IDNumber: "2", Status: "adult"},
			{Name: "Budi", IDNumber: "3", Status: "adult"},
		},
	})
	assert.ErrorIs(t, err, ErrTrainFull)
	gateway.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestCreate_UnpaidOrderConflict(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 10, 100000)

	prior := domain.Booking{UserID: fx.user.ID, ScheduleID: fx.schedule.ID, TotalPrice: 100000, Status: domain.BookingPending}
	require.NoError(t, db.Create(&prior).Error)
	require.NoError(t, db.Create(&domain.Payment{
		BookingID: prior.ID,
		Amount:    100000,
		Status:    domain.PaymentPending,
		PaymentID: "inv-old",
	}).Error)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	gateway := &MockInvoiceCreator{}
	svc := newTestService(t, db, gateway, users)

	_, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: fx.schedule.ID,
		Passengers: []PassengerInput{{Name: "Adi", IDNumber: "1", Status: "adult"}},
	})
	assert.ErrorIs(t, err, ErrUnpaidOrder)

	// Only the pre-existing booking remains.
	var bookings int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookings).Error)
	assert.Equal(t, int64(1), bookings)
	gateway.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestCreate_InvalidPassengerStatus(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 5, 100000)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	gateway := &MockInvoiceCreator{}
	svc := newTestService(t, db, gateway, users)

	_, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: fx.schedule.ID,
		Passengers: []PassengerInput{{Name: "Adi", IDNumber: "1", Status: "infant"}},
	})
	assert.ErrorIs(t, err, ErrInvalidPassenger)
}

func TestCreate_ScheduleNotFound(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 5, 100000)

	users := &MockUserReader{}
	users.On("GetByID", mock.Anything, fx.user.ID).Return(&fx.user, nil)

	svc := newTestService(t, db, &MockInvoiceCreator{}, users)

	_, err := svc.Create(context.Background(), fx.user.ID, CreateBookingRequest{
		ScheduleID: "00000000-0000-0000-0000-000000000000",
		Passengers: []PassengerInput{{Name: "Adi", IDNumber: "1", Status: "adult"}},
	})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestGet_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 5, 100000)

	other := domain.User{Name: "Dawud", Email: "dawud@gmail.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&other).Error)

	b := domain.Booking{UserID: fx.user.ID, ScheduleID: fx.schedule.ID, TotalPrice: 100000, Status: domain.BookingPending}
	require.NoError(t, db.Create(&b).Error)

	users := &MockUserReader{}
	svc := newTestService(t, db, &MockInvoiceCreator{}, users)

	got, err := svc.Get(context.Background(), fx.user.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.Booking.ID)

	// Another user gets a plain not-found, not a forbidden.
	_, err = svc.Get(context.Background(), other.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_PaidBookingImmutable(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 5, 100000)

	b := domain.Booking{UserID: fx.user.ID, ScheduleID: fx.schedule.ID, TotalPrice: 100000, Status: domain.BookingPaid}
	require.NoError(t, db.Create(&b).Error)

	svc := newTestService(t, db, &MockInvoiceCreator{}, &MockUserReader{})

	reason := "changed my mind"
	_, err := svc.Update(context.Background(), fx.user.ID, b.ID, UpdateBookingRequest{
		Status:         "canceled",
		ReasonCanceled: &reason,
	})
	assert.ErrorIs(t, err, ErrPaidImmutable)
}

func TestDelete_OwnerAndStatusGuards(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db, 5, 100000)

	other := domain.User{Name: "Dawud", Email: "dawud@gmail.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&other).Error)

	b := domain.Booking{UserID: fx.user.ID, ScheduleID: fx.schedule.ID, TotalPrice: 100000, Status: domain.BookingPending}
	require.NoError(t, db.Create(&b).Error)

	svc := newTestService(t, db, &MockInvoiceCreator{}, &MockUserReader{})

	assert.ErrorIs(t, svc.Delete(context.Background(), other.ID, b.ID), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), fx.user.ID, b.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}
