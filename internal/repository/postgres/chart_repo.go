package postgres

import (
	"context"

	"github.com/authly/authly-rhythm/internal/domain"
	"gorm.io/gorm"
)

type chartRepository struct {
	db *gorm.DB
}

func NewChartRepository(db *gorm.DB) *chartRepository {
	return &chartRepository{db: db}
}

func (r *chartRepository) Create(ctx context.Context, chart *domain.Chart) error {
	return r.db.WithContext(ctx).Create(chart).Error
}

func (r *chartRepository) GetByID(ctx context.Context, id int) (*domain.Chart, error) {
	var chart domain.Chart
	err := r.db.WithContext(ctx).First(&chart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chart, nil
}

func (r *chartRepository) List(ctx context.Context, limit, offset int) ([]*domain.Chart, error) {
	var charts []*domain.Chart
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&charts).Error
	if err != nil {
		return nil, err
	}
	return charts, nil
}

func (r *chartRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chart{}).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *chartRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&domain.Chart{}, "id = ?", id).Error
}
