package repository

import (
	"context"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

type StationFilters struct {
	City   string
	Limit  int
	Offset int
}

type StationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) *StationRepository {
	return &StationRepository{db: db}
}

func (r *StationRepository) GetAll(ctx context.Context, f StationFilters) ([]domain.Station, int64, error) {
	var stations []domain.Station
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Station{})
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	err := q.Order("name").Find(&stations).Error
	return stations, total, err
}

func (r *StationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	var s domain.Station
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StationRepository) Create(ctx context.Context, s *domain.Station) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StationRepository) Update(ctx context.Context, s *domain.Station) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Station{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
