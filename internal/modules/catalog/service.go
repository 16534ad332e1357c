package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"railbook/internal/domain"
	"railbook/internal/repository"
)

type Service struct {
	stations StationRepository
	trains   TrainRepository
	routes   RouteRepository
}

func NewService(stations StationRepository, trains TrainRepository, routes RouteRepository) *Service {
	return &Service{stations: stations, trains: trains, routes: routes}
}

/* ---------- STATIONS ---------- */

func (s *Service) ListStations(ctx context.Context, f repository.StationFilters) ([]domain.Station, int64, error) {
	return s.stations.GetAll(ctx, f)
}

func (s *Service) GetStation(ctx context.Context, id string) (*domain.Station, error) {
	st, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return st, nil
}

func (s *Service) CreateStation(ctx context.Context, req CreateStationRequest) (*domain.Station, error) {
	st := &domain.Station{
		Name:      req.Name,
		Code:      req.Code,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		City:      req.City,
	}
	if err := s.stations.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) UpdateStation(ctx context.Context, id string, req UpdateStationRequest) (*domain.Station, error) {
	st, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	st.Name = req.Name
	st.Code = req.Code
	st.Latitude = req.Latitude
	st.Longitude = req.Longitude
	st.City = req.City

	if err := s.stations.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteStation refuses while any active route still references the station.
func (s *Service) DeleteStation(ctx context.Context, id string) error {
	if _, err := s.stations.GetByID(ctx, id); err != nil {
		return mapNotFound(err)
	}

	n, err := s.routes.CountByStation(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrStationInUse
	}

	return mapNotFound(s.stations.Delete(ctx, id))
}

/* ---------- TRAINS ---------- */

func (s *Service) ListTrains(ctx context.Context, limit, offset int) ([]domain.Train, int64, error) {
	return s.trains.GetAll(ctx, limit, offset)
}

func (s *Service) GetTrain(ctx context.Context, id string) (*domain.Train, error) {
	t, err := s.trains.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *Service) CreateTrain(ctx context.Context, req CreateTrainRequest) (*domain.Train, error) {
	class := domain.TrainClass(req.Class)
	if !class.Valid() {
		return nil, ErrValidation
	}

	t := &domain.Train{
		Name:     req.Name,
		Class:    class,
		Code:     req.Code,
		Capacity: req.Capacity,
	}
	if err := s.trains.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTrain(ctx context.Context, id string, req UpdateTrainRequest) (*domain.Train, error) {
	class := domain.TrainClass(req.Class)
	if !class.Valid() {
		return nil, ErrValidation
	}

	t, err := s.trains.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	t.Name = req.Name
	t.Class = class
	t.Code = req.Code
	t.Capacity = req.Capacity

	if err := s.trains.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTrain(ctx context.Context, id string) error {
	return mapNotFound(s.trains.Delete(ctx, id))
}

/* ---------- ROUTES ---------- */

func (s *Service) ListRoutes(ctx context.Context, limit, offset int) ([]repository.RouteDetail, int64, error) {
	return s.routes.GetAll(ctx, limit, offset)
}

func (s *Service) GetRoute(ctx context.Context, id string) (*repository.RouteDetail, error) {
	rt, err := s.routes.GetDetailByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return rt, nil
}

func (s *Service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*domain.Route, error) {
	if err := s.checkEndpoints(ctx, req.OriginID, req.DestinationID); err != nil {
		return nil, err
	}

	rt := &domain.Route{OriginID: req.OriginID, DestinationID: req.DestinationID}
	if err := s.routes.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) UpdateRoute(ctx context.Context, id string, req UpdateRouteRequest) (*domain.Route, error) {
	rt, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.checkEndpoints(ctx, req.OriginID, req.DestinationID); err != nil {
		return nil, err
	}

	rt.OriginID = req.OriginID
	rt.DestinationID = req.DestinationID

	if err := s.routes.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	return mapNotFound(s.routes.Delete(ctx, id))
}

func (s *Service) checkEndpoints(ctx context.Context, originID, destinationID string) error {
	if originID == destinationID {
		return ErrSameStation
	}
	if _, err := s.stations.GetByID(ctx, originID); err != nil {
		return mapNotFound(err)
	}
	if _, err := s.stations.GetByID(ctx, destinationID); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
