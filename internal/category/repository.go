package category

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/model"
)

type Repository interface {
	Create(ctx context.Context, family model.Family, category *model.Category) error
	FindByID(ctx context.Context, family model.Family, id int64) (*model.Category, error)
	FindByName(ctx context.Context, family model.Family, name string) (*model.Category, error)
	FindAll(ctx context.Context, family model.Family) ([]model.Category, error)
	Rename(ctx context.Context, family model.Family, id int64, name string) error
	Delete(ctx context.Context, family model.Family, id int64) error
	CountLinks(ctx context.Context, family model.Family, id int64) (int, error)
}
