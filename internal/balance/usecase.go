package balance

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/balance/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type UseCase interface {
	GetBookBalance(ctx context.Context, bookID int64) (*model.BookBalance, error)
	ListBalances(ctx context.Context, filters *dto.BalanceFilters) ([]model.BookBalance, int, error)
	Totals(ctx context.Context) (*model.BookBalance, error)
}
