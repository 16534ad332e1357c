package repository

import (
	"context"
	"errors"
	"time"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

// ScheduleDetail expands a schedule with its train and route endpoints.
type ScheduleDetail struct {
	Schedule    domain.Schedule `json:"schedule"`
	Train       domain.Train    `json:"train"`
	Origin      domain.Station  `json:"origin"`
	Destination domain.Station  `json:"destination"`
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetAll(ctx context.Context, limit, offset int) ([]ScheduleDetail, int64, error) {
	var schedules []domain.Schedule
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Schedule{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("departure_time").Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	out := make([]ScheduleDetail, 0, len(schedules))
	for _, s := range schedules {
		d, err := r.expand(ctx, s)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, nil
}

func (r *ScheduleRepository) GetDetailByID(ctx context.Context, id string) (*ScheduleDetail, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, *s)
}

func (r *ScheduleRepository) expand(ctx context.Context, s domain.Schedule) (*ScheduleDetail, error) {
	var train domain.Train
	if err := r.db.WithContext(ctx).Unscoped().First(&train, "id = ?", s.TrainID).Error; err != nil {
		return nil, err
	}
	var route domain.Route
	if err := r.db.WithContext(ctx).Unscoped().First(&route, "id = ?", s.RouteID).Error; err != nil {
		return nil, err
	}
	var origin, destination domain.Station
	if err := r.db.WithContext(ctx).Unscoped().First(&origin, "id = ?", route.OriginID).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Unscoped().First(&destination, "id = ?", route.DestinationID).Error; err != nil {
		return nil, err
	}
	return &ScheduleDetail{Schedule: s, Train: train, Origin: origin, Destination: destination}, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Schedule{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindNearestPrior returns the train's latest schedule departing at or before
// the candidate departure, excluding excludeID. Nil when there is none.
func (r *ScheduleRepository) FindNearestPrior(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error) {
	q := r.db.WithContext(ctx).
		Where("train_id = ? AND departure_time <= ?", trainID, departure).
		Order("departure_time DESC")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var s domain.Schedule
	if err := q.First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindNearestNext returns the train's earliest schedule departing at or after
// the candidate departure, excluding excludeID. Nil when there is none.
func (r *ScheduleRepository) FindNearestNext(ctx context.Context, trainID string, departure time.Time, excludeID string) (*domain.Schedule, error) {
	q := r.db.WithContext(ctx).
		Where("train_id = ? AND departure_time >= ?", trainID, departure).
		Order("departure_time ASC")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var s domain.Schedule
	if err := q.First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
