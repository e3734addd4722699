package service

import (
	"context"
	"errors"

	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/repository"
	"gorm.io/gorm"
)

const (
	DefaultChartLimit = 10
	MaxChartLimit     = 50
)

type ChartService struct {
	chartRepo repository.ChartRepository
}

func NewChartService(chartRepo repository.ChartRepository) *ChartService {
	return &ChartService{chartRepo: chartRepo}
}

// List returns a newest-first page of charts plus the total count. Limit
// is clamped to [1, MaxChartLimit] and page to >= 1. The count comes
// from a separate query, so it may be taken at a slightly different
// instant than the page itself.
func (s *ChartService) List(ctx context.Context, page, limit int) ([]*domain.Chart, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxChartLimit {
		limit = MaxChartLimit
	}
	offset := (page - 1) * limit

	charts, err := s.chartRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.chartRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return charts, total, nil
}

// Get returns the chart with the given id, or nil when it does not
// exist.
func (s *ChartService) Get(ctx context.Context, id int) (*domain.Chart, error) {
	chart, err := s.chartRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return chart, nil
}

// Create stores a new chart owned by owner and returns its id. The id
// and timestamps are server-assigned.
func (s *ChartService) Create(ctx context.Context, owner, title, audioURL string, keyPresses []domain.KeyPress) (int, error) {
	if title == "" || audioURL == "" {
		return 0, domain.BadRequest("Title and audio URL are required")
	}
	if len(keyPresses) == 0 {
		return 0, domain.BadRequest("Chart must contain at least one key press")
	}

	chart := &domain.Chart{
		OwnerUsername: owner,
		Title:         title,
		AudioURL:      audioURL,
		KeyPresses:    keyPresses,
	}
	if err := s.chartRepo.Create(ctx, chart); err != nil {
		return 0, err
	}
	return chart.ID, nil
}

// Delete removes the chart with the given id after verifying that
// subject owns it.
func (s *ChartService) Delete(ctx context.Context, subject string, id int) error {
	chart, err := s.chartRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("Chart not found")
		}
		return err
	}

	if chart.OwnerUsername != subject {
		return domain.Forbidden("You do not own this chart")
	}

	return s.chartRepo.Delete(ctx, id)
}
