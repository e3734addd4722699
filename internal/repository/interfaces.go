package repository

import (
	"context"

	"github.com/authly/authly-rhythm/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type ChartRepository interface {
	Create(ctx context.Context, chart *domain.Chart) error
	GetByID(ctx context.Context, id int) (*domain.Chart, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Chart, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int) error
}

type Repositories struct {
	User  UserRepository
	Chart ChartRepository
}
