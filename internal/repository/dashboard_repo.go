package repository

import (
	"context"
	"time"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

type EntityCounts struct {
	Stations  int64 `json:"total_station"`
	Trains    int64 `json:"total_train"`
	Routes    int64 `json:"total_route"`
	Schedules int64 `json:"total_schedule"`
	Bookings  int64 `json:"total_booking"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Counts(ctx context.Context) (*EntityCounts, error) {
	var c EntityCounts
	for _, q := range []struct {
		model interface{}
		dst   *int64
	}{
		{&domain.Station{}, &c.Stations},
		{&domain.Train{}, &c.Trains},
		{&domain.Route{}, &c.Routes},
		{&domain.Schedule{}, &c.Schedules},
		{&domain.Booking{}, &c.Bookings},
	} {
		if err := r.db.WithContext(ctx).Model(q.model).Count(q.dst).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// ProfitBetween sums booking totals created within [from, to).
func (r *DashboardRepository) ProfitBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("SUM(total_price)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
