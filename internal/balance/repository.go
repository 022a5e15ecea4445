package balance

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/balance/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type Repository interface {
	FindByBook(ctx context.Context, bookID int64) (*model.InventoryRow, error)
	FindAll(ctx context.Context, filters *dto.BalanceFilters) ([]model.InventoryRow, int, error)
	// SaleLines returns final sales for the given books, or for every book
	// when bookIDs is empty.
	SaleLines(ctx context.Context, bookIDs []int64) ([]model.SaleLine, error)
}
