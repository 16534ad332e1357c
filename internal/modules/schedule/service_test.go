package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"railbook/internal/domain"
	"railbook/internal/repository"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetAll(ctx context.Context, limit, offset int) ([]repository.ScheduleDetail, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]repository.ScheduleDetail), args.Get(1).(int64), args.Error(2)
}

func (m *MockScheduleRepository) GetDetailByID(ctx context.Context, id string) (*repository.ScheduleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ScheduleDetail), args.Error(1)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindNearestPrior(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error) {
	args := m.Called(ctx, trainID, departure, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) FindNearestNext(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error) {
	args := m.Called(ctx, trainID, departure, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

type MockTrainReader struct {
	mock.Mock
}

func (m *MockTrainReader) GetByID(ctx context.Context, id string) (*domain.Train, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

type MockRouteReader struct {
	mock.Mock
}

func (m *MockRouteReader) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

const (
	trainID = "11111111-1111-1111-1111-111111111111"
	routeID = "22222222-2222-2222-2222-222222222222"
)

func setupMocks(t *testing.T) (*MockScheduleRepository, *Service) {
	t.Helper()
	schedules := &MockScheduleRepository{}
	trains := &MockTrainReader{}
	routes := &MockRouteReader{}
	trains.On("GetByID", mock.Anything, trainID).Return(&domain.Train{ID: trainID, Capacity: 50}, nil)
	routes.On("GetByID", mock.Anything, routeID).Return(&domain.Route{ID: routeID}, nil)
	return schedules, NewService(schedules, trains, routes)
}

func TestCreate_NoNeighbors(t *testing.T) {
	schedules, svc := setupMocks(t)

	departure := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	arrival := departure.Add(3 * time.Hour)

	schedules.On("FindNearestPrior", mock.Anything, trainID, departure, "").Return(nil, nil)
	schedules.On("FindNearestNext", mock.Anything, trainID, departure, "").Return(nil, nil)
	schedules.On("Create", mock.Anything, mock.Anything).Return(nil)

	sched, err := svc.Create(context.Background(), CreateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         250000,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, sched.SeatAvailable)
	schedules.AssertExpectations(t)
}

func TestCreate_FitsBetweenNeighbors(t *testing.T) {
	schedules, svc := setupMocks(t)

	departure := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	arrival := departure.Add(2 * time.Hour)

	prior := &domain.Schedule{ArrivalTime: departure.Add(-time.Hour)}
	next := &domain.Schedule{DepartureTime: arrival.Add(time.Hour)}
	schedules.On("FindNearestPrior", mock.Anything, trainID, departure, "").Return(prior, nil)
	schedules.On("FindNearestNext", mock.Anything, trainID, departure, "").Return(next, nil)
	schedules.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), CreateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         250000,
	})
	require.NoError(t, err)
}

func TestCreate_OverlapsPriorArrival(t *testing.T) {
	schedules, svc := setupMocks(t)

	departure := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	// Departing exactly at the prior arrival counts as a conflict.
	prior := &domain.Schedule{ArrivalTime: departure}
	schedules.On("FindNearestPrior", mock.Anything, trainID, departure, "").Return(prior, nil)

	_, err := svc.Create(context.Background(), CreateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
		Price:         250000,
	})
	assert.ErrorIs(t, err, ErrConflict)
	schedules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_OverlapsNextDeparture(t *testing.T) {
	schedules, svc := setupMocks(t)

	departure := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	arrival := departure.Add(2 * time.Hour)

	next := &domain.Schedule{DepartureTime: arrival.Add(-30 * time.Minute)}
	schedules.On("FindNearestPrior", mock.Anything, trainID, departure, "").Return(nil, nil)
	schedules.On("FindNearestNext", mock.Anything, trainID, departure, "").Return(next, nil)

	_, err := svc.Create(context.Background(), CreateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         250000,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreate_ArrivalBeforeDeparture(t *testing.T) {
	_, svc := setupMocks(t)

	departure := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(-time.Hour),
		Price:         250000,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_ResetsSeatCounter(t *testing.T) {
	schedules, svc := setupMocks(t)

	departure := time.Date(2026, 9, 11, 8, 0, 0, 0, time.UTC)
	existing := &domain.Schedule{
		ID:            "33333333-3333-3333-3333-333333333333",
		TrainID:       trainID,
		RouteID:       routeID,
		SeatAvailable: 12,
	}
	schedules.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	schedules.On("FindNearestPrior", mock.Anything, trainID, departure, existing.ID).Return(nil, nil)
	schedules.On("FindNearestNext", mock.Anything, trainID, departure, existing.ID).Return(nil, nil)
	schedules.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Update(context.Background(), existing.ID, UpdateScheduleRequest{
		TrainID:       trainID,
		RouteID:       routeID,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(4 * time.Hour),
		Price:         300000,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.SeatAvailable)
}
