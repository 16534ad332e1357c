package catalog

import (
	"context"

	"railbook/internal/domain"
	"railbook/internal/repository"
)

type StationRepository interface {
	GetAll(ctx context.Context, f repository.StationFilters) ([]domain.Station, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	Create(ctx context.Context, s *domain.Station) error
	Update(ctx context.Context, s *domain.Station) error
	Delete(ctx context.Context, id string) error
}

type TrainRepository interface {
	GetAll(ctx context.Context, limit, offset int) ([]domain.Train, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Train, error)
	Create(ctx context.Context, t *domain.Train) error
	Update(ctx context.Context, t *domain.Train) error
	Delete(ctx context.Context, id string) error
}

type RouteRepository interface {
	GetAll(ctx context.Context, limit, offset int) ([]repository.RouteDetail, int64, error)
	GetDetailByID(ctx context.Context, id string) (*repository.RouteDetail, error)
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	Create(ctx context.Context, rt *domain.Route) error
	Update(ctx context.Context, rt *domain.Route) error
	Delete(ctx context.Context, id string) error
	CountByStation(ctx context.Context, stationID string) (int64, error)
}
