package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/balance"
	"github.com/realdaly/books-log-sub000/internal/balance/dto"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type balanceUseCase struct {
	repo   balance.Repository
	logger logger.ZapLogger
}

func NewBalanceUseCase(repo balance.Repository, log logger.ZapLogger) balance.UseCase {
	return &balanceUseCase{
		repo:   repo,
		logger: log,
	}
}

// GetBookBalance recomputes the book's position. An unknown book yields a
// zeroed balance instead of an error.
func (uc *balanceUseCase) GetBookBalance(ctx context.Context, bookID int64) (*model.BookBalance, error) {
	row, err := uc.repo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		uc.logger.Debug("balance requested for unknown book", zap.Int64("book_id", bookID))
		zero := balance.Zero(bookID)
		return &zero, nil
	}

	lines, err := uc.repo.SaleLines(ctx, []int64{bookID})
	if err != nil {
		return nil, err
	}
	row.Revenue = balance.Revenue(lines)

	b := balance.Compute(*row)
	uc.checkView(*row, b)
	return &b, nil
}

func (uc *balanceUseCase) ListBalances(ctx context.Context, filters *dto.BalanceFilters) ([]model.BookBalance, int, error) {
	if filters == nil {
		filters = &dto.BalanceFilters{}
	}
	rows, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []model.BookBalance{}, count, nil
	}

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].BookID
	}
	lines, err := uc.repo.SaleLines(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	revenue := balance.RevenueByBook(lines)

	out := make([]model.BookBalance, len(rows))
	for i, row := range rows {
		row.Revenue = revenue[row.BookID]
		out[i] = balance.Compute(row)
		uc.checkView(row, out[i])
	}
	return out, count, nil
}

// Totals sums the balance of every book.
func (uc *balanceUseCase) Totals(ctx context.Context) (*model.BookBalance, error) {
	all, _, err := uc.ListBalances(ctx, &dto.BalanceFilters{})
	if err != nil {
		return nil, err
	}
	t := balance.Sum(all)
	return &t, nil
}

// checkView logs when the SQL view and the engine disagree.
func (uc *balanceUseCase) checkView(row model.InventoryRow, b model.BookBalance) {
	if row.RemainingInstitution == b.RemainingInstitution &&
		row.CurrentStock == b.CurrentStock &&
		row.RemainingBranches == b.RemainingBranches {
		return
	}
	uc.logger.Error("inventory view out of step with balance engine",
		zap.Int64("book_id", row.BookID),
		zap.Int64("view_current_stock", row.CurrentStock),
		zap.Int64("engine_current_stock", b.CurrentStock),
		zap.Int64("view_remaining_institution", row.RemainingInstitution),
		zap.Int64("engine_remaining_institution", b.RemainingInstitution),
	)
}
