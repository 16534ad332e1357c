package repository

import (
	"context"

	"railbook/internal/domain"

	"gorm.io/gorm"
)

type TrainRepository struct {
	db *gorm.DB
}

func NewTrainRepository(db *gorm.DB) *TrainRepository {
	return &TrainRepository{db: db}
}

func (r *TrainRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Train, int64, error) {
	var trains []domain.Train
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Train{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Order("name").Find(&trains).Error
	return trains, total, err
}

func (r *TrainRepository) GetByID(ctx context.Context, id string) (*domain.Train, error) {
	var t domain.Train
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainRepository) Create(ctx context.Context, t *domain.Train) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TrainRepository) Update(ctx context.Context, t *domain.Train) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TrainRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Train{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
