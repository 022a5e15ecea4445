package book

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/book/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type Repository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	FindAll(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id int64) error

	IsTitleUnique(ctx context.Context, title string, excludeID int64) (bool, error)
	NextDisplayOrder(ctx context.Context) (int64, error)
	Reorder(ctx context.Context, orderedIDs []int64) error
}
