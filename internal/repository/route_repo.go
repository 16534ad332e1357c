package repository

import (
	"context"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

// RouteDetail is a route with both endpoint stations expanded. Loaded with
// explicit queries so the fetch shape is visible at the call site.
type RouteDetail struct {
	Route       domain.Route   `json:"route"`
	Origin      domain.Station `json:"origin"`
	Destination domain.Station `json:"destination"`
}

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) GetAll(ctx context.Context, limit, offset int) ([]RouteDetail, int64, error) {
	var routes []domain.Route
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Route{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("created_at").Find(&routes).Error; err != nil {
		return nil, 0, err
	}

	out := make([]RouteDetail, 0, len(routes))
	for _, rt := range routes {
		d, err := r.expand(ctx, rt)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, nil
}

func (r *RouteRepository) GetDetailByID(ctx context.Context, id string) (*RouteDetail, error) {
	rt, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, *rt)
}

func (r *RouteRepository) expand(ctx context.Context, rt domain.Route) (*RouteDetail, error) {
	var origin, destination domain.Station
	if err := r.db.WithContext(ctx).Unscoped().First(&origin, "id = ?", rt.OriginID).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Unscoped().First(&destination, "id = ?", rt.DestinationID).Error; err != nil {
		return nil, err
	}
	return &RouteDetail{Route: rt, Origin: origin, Destination: destination}, nil
}

func (r *RouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	var rt domain.Route
	if err := r.db.WithContext(ctx).First(&rt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepository) Create(ctx context.Context, rt *domain.Route) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RouteRepository) Update(ctx context.Context, rt *domain.Route) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Route{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStation counts active routes that reference the station as either
// endpoint. Used to refuse deleting stations that are still in use.
func (r *RouteRepository) CountByStation(ctx context.Context, stationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Route{}).
		Where("origin_id = ? OR destination_id = ?", stationID, stationID).
		Count(&n).Error
	return n, err
}
