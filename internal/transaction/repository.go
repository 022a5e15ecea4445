package transaction

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

type Repository interface {
	// Ledger transactions
	Create(ctx context.Context, tx *model.Transaction) error
	CreateBatch(ctx context.Context, txs []*model.Transaction) error
	FindByID(ctx context.Context, id int64) (*model.Transaction, error)
	FindAll(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error)
	Update(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, id int64) error

	// Other-store movements
	CreateOther(ctx context.Context, ot *model.OtherTransaction) error
	FindOtherByID(ctx context.Context, id int64) (*model.OtherTransaction, error)
	FindAllOther(ctx context.Context, filters *dto.OtherFilters) ([]model.OtherTransaction, int, error)
	UpdateOther(ctx context.Context, ot *model.OtherTransaction) error
	DeleteOther(ctx context.Context, id int64) error

	// Reference checks
	BookExists(ctx context.Context, id int64) (bool, error)
	PartyExists(ctx context.Context, id int64) (bool, error)
}
