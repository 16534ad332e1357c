package schedule

import (
	"context"
	"time"

	"railbook/internal/domain"
	"railbook/internal/repository"
)

type ScheduleRepository interface {
	GetAll(ctx context.Context, limit, offset int) ([]repository.ScheduleDetail, int64, error)
	GetDetailByID(ctx context.Context, id string) (*repository.ScheduleDetail, error)
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	Create(ctx context.Context, s *domain.Schedule) error
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id string) error
	FindNearestPrior(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error)
	FindNearestNext(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error)
}

type TrainReader interface {
	GetByID(ctx context.Context, id string) (*domain.Train, error)
}

type RouteReader interface {
	GetByID(ctx context.Context, id string) (*domain.Route, error)
}
