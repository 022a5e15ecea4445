package transaction

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

type UseCase interface {
	CreateTransaction(ctx context.Context, input *dto.CreateTransactionInput) (*model.Transaction, error)
	CreateTransactionBatch(ctx context.Context, input *dto.CreateTransactionBatchInput) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error)
	UpdateTransaction(ctx context.Context, input *dto.UpdateTransactionInput) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	DeleteTransactions(ctx context.Context, ids []int64) *bulk.Result[int64]

	CreateOtherTransaction(ctx context.Context, input *dto.CreateOtherTransactionInput) (*model.OtherTransaction, error)
	GetOtherTransaction(ctx context.Context, id int64) (*model.OtherTransaction, error)
	ListOtherTransactions(ctx context.Context, filters *dto.OtherFilters) ([]model.OtherTransaction, int, error)
	UpdateOtherTransaction(ctx context.Context, input *dto.UpdateOtherTransactionInput) (*model.OtherTransaction, error)
	DeleteOtherTransaction(ctx context.Context, id int64) error
	DeleteOtherTransactions(ctx context.Context, ids []int64) *bulk.Result[int64]
}
