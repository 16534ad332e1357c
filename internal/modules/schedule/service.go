package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"railbook/internal/domain"
	"railbook/internal/repository"
)

type Service struct {
	schedules ScheduleRepository
	trains    TrainReader
	routes    RouteReader
}

func NewService(schedules ScheduleRepository, trains TrainReader, routes RouteReader) *Service {
	return &Service{schedules: schedules, trains: trains, routes: routes}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]repository.ScheduleDetail, int64, error) {
	return s.schedules.GetAll(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (*repository.ScheduleDetail, error) {
	d, err := s.schedules.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req CreateScheduleRequest) (*domain.Schedule, error) {
	train, err := s.validateRefs(ctx, req.TrainID, req.RouteID, req.DepartureTime, req.ArrivalTime, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, req.TrainID, req.DepartureTime, req.ArrivalTime, ""); err != nil {
		return nil, err
	}

	sched := &domain.Schedule{
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		SeatAvailable: train.Capacity,
	}
	if err := s.schedules.Create(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateScheduleRequest) (*domain.Schedule, error) {
	sched, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	train, err := s.validateRefs(ctx, req.TrainID, req.RouteID, req.DepartureTime, req.ArrivalTime, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, req.TrainID, req.DepartureTime, req.ArrivalTime, id); err != nil {
		return nil, err
	}

	sched.TrainID = req.TrainID
	sched.RouteID = req.RouteID
	sched.DepartureTime = req.DepartureTime
	sched.ArrivalTime = req.ArrivalTime
	sched.Price = req.Price
	// The seat counter restarts from the train's capacity on every update,
	// matching schedule creation.
	sched.SeatAvailable = train.Capacity

	if err := s.schedules.Update(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.schedules.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) validateRefs(ctx context.Context, trainID, routeID string, departure, arrival time.Time, price float64) (*domain.Train, error) {
	if !arrival.After(departure) {
		return nil, ErrValidation
	}
	if price < 0 {
		return nil, ErrValidation
	}

	train, err := s.trains.GetByID(ctx, trainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}

	if _, err := s.routes.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	return train, nil
}

// checkConflict validates the candidate window against the train's nearest
// neighbors in departure-time order only. Gaps between non-adjacent schedules
// are deliberately not inspected.
func (s *Service) checkConflict(ctx context.Context, trainID string, departure, arrival time.Time, excludeID string) error {
	prior, err := s.schedules.FindNearestPrior(ctx, trainID, departure, excludeID)
	if err != nil {
		return err
	}
	if prior != nil && !departure.After(prior.ArrivalTime) {
		return ErrConflict
	}

	next, err := s.schedules.FindNearestNext(ctx, trainID, departure, excludeID)
	if err != nil {
		return err
	}
	if next != nil && !arrival.Before(next.DepartureTime) {
		return ErrConflict
	}

	return nil
}
