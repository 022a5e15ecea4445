package book

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/book/dto"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type UseCase interface {
	CreateBook(ctx context.Context, input *dto.CreateBookInput) (*model.Book, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	ListBooks(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error)
	UpdateBook(ctx context.Context, input *dto.UpdateBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id int64) error

	// Batch ops
	CreateBooks(ctx context.Context, titles []string) (*dto.CreateBooksResult, error)
	EnsureBook(ctx context.Context, title string) (*model.Book, bool, error)
	DeleteBooks(ctx context.Context, ids []int64) *bulk.Result[int64]

	ReorderBooks(ctx context.Context, orderedIDs []int64) error
}
