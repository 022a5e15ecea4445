package category

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/category/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	UpsertCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, bool, error)
	GetCategory(ctx context.Context, family model.Family, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, family model.Family) ([]model.Category, error)
	RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, family model.Family, id int64) error
}
