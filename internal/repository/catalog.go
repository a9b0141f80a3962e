package repository

import (
	"context"

	"murim-academy/internal/domain"
)

// ProductRepository persists store products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (int64, error)
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ScheduleRepository persists weekly class slots.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (int64, error)
	List(ctx context.Context) ([]domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TrainerRepository persists instructors.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (int64, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
