package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/transaction"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

type transactionUseCase struct {
	repo   transaction.Repository
	logger logger.ZapLogger
}

func NewTransactionUseCase(repo transaction.Repository, log logger.ZapLogger) transaction.UseCase {
	return &transactionUseCase{
		repo:   repo,
		logger: log,
	}
}

// build validates the input and turns it into a row. Nothing is written.
func (uc *transactionUseCase) build(ctx context.Context, in *dto.CreateTransactionInput) (*model.Transaction, error) {
	if err := transaction.CheckKind(in.Type, in.State, in.PartyID != nil); err != nil {
		return nil, err
	}
	state := in.State
	if state == "" {
		state = model.TxStateFinal
	}
	if in.Qty <= 0 {
		return nil, apperror.Validation("qty", "must be > 0, got %d", in.Qty)
	}

	receipt := strings.TrimSpace(in.ReceiptNo)
	if in.Type == model.TxTypeSale {
		if in.UnitPrice.Valid && in.UnitPrice.Decimal.IsNegative() {
			return nil, apperror.Validation("unit_price", "must be >= 0")
		}
		if in.TotalPrice.Valid && in.TotalPrice.Decimal.IsNegative() {
			return nil, apperror.Validation("total_price", "must be >= 0")
		}
	} else {
		if in.UnitPrice.Valid || in.TotalPrice.Valid || receipt != "" {
			return nil, apperror.Validation("price", "prices and receipt apply to sales only")
		}
	}

	if in.Type != model.TxTypeStore && len(in.CategoryIDs) > 0 {
		return nil, apperror.Validation("category_ids", "store categories apply to store movements only")
	}

	ok, err := uc.repo.BookExists(ctx, in.BookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("book", in.BookID)
	}
	if in.PartyID != nil {
		ok, err := uc.repo.PartyExists(ctx, *in.PartyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NotFound("party", *in.PartyID)
		}
	}

	date := in.TxDate
	if date.IsZero() {
		date = model.Today()
	}

	now := time.Now().UTC()
	t := &model.Transaction{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Type:        in.Type,
		State:       state,
		BookID:      in.BookID,
		PartyID:     in.PartyID,
		Qty:         in.Qty,
		UnitPrice:   in.UnitPrice,
		TotalPrice:  in.TotalPrice,
		TxDate:      date,
		Notes:       in.Notes,
		CategoryIDs: in.CategoryIDs,
	}
	if receipt != "" {
		t.ReceiptNo = &receipt
	}
	return t, nil
}

func translate(err error) error {
	if database.IsForeignKeyViolation(err) {
		return apperror.Validation("category_ids", "unknown category")
	}
	if database.IsCheckViolation(err) {
		return apperror.Validation("transaction", "rejected by ledger constraints: %v", err)
	}
	return err
}

func (uc *transactionUseCase) CreateTransaction(ctx context.Context, input *dto.CreateTransactionInput) (*model.Transaction, error) {
	t, err := uc.build(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, translate(err)
	}

	uc.logger.Info("transaction created",
		zap.Int64("transaction_id", t.ID),
		zap.String("type", string(t.Type)),
		zap.String("state", string(t.State)),
		zap.Int64("book_id", t.BookID),
		zap.Int64("qty", t.Qty),
	)
	return t, nil
}

func (uc *transactionUseCase) CreateTransactionBatch(ctx context.Context, input *dto.CreateTransactionBatchInput) ([]model.Transaction, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.Validation("lines", "at least one book is required")
	}

	rows := make([]*model.Transaction, 0, len(input.Lines))
	for _, line := range input.Lines {
		t, err := uc.build(ctx, &dto.CreateTransactionInput{
			Type:        input.Type,
			State:       input.State,
			BookID:      line.BookID,
			PartyID:     input.PartyID,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
			ReceiptNo:   input.ReceiptNo,
			TxDate:      input.TxDate,
			Notes:       input.Notes,
			CategoryIDs: input.CategoryIDs,
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, t)
	}

	if err := uc.repo.CreateBatch(ctx, rows); err != nil {
		return nil, translate(err)
	}

	out := make([]model.Transaction, len(rows))
	for i, t := range rows {
		out[i] = *t
	}
	uc.logger.Info("transaction batch created",
		zap.String("type", string(input.Type)),
		zap.Int("lines", len(out)),
	)
	return out, nil
}

func (uc *transactionUseCase) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NotFound("transaction", id)
	}
	return t, nil
}

func (uc *transactionUseCase) ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error) {
	if filters == nil {
		filters = &dto.TransactionFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

// UpdateTransaction re-specifies every field of an existing row.
func (uc *transactionUseCase) UpdateTransaction(ctx context.Context, input *dto.UpdateTransactionInput) (*model.Transaction, error) {
	existing, err := uc.GetTransaction(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	t, err := uc.build(ctx, &input.CreateTransactionInput)
	if err != nil {
		return nil, err
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt

	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, translate(err)
	}
	uc.logger.Info("transaction updated", zap.Int64("transaction_id", t.ID))
	return uc.GetTransaction(ctx, t.ID)
}

func (uc *transactionUseCase) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := uc.GetTransaction(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("transaction deleted", zap.Int64("transaction_id", id))
	return nil
}

func (uc *transactionUseCase) DeleteTransactions(ctx context.Context, ids []int64) *bulk.Result[int64] {
	res := &bulk.Result[int64]{}
	for _, id := range ids {
		if err := uc.DeleteTransaction(ctx, id); err != nil {
			uc.logger.Warn("bulk transaction delete failed", zap.Int64("transaction_id", id), zap.Error(err))
			res.Fail(id, err)
			continue
		}
		res.Ok(id)
	}
	return res
}

func (uc *transactionUseCase) buildOther(ctx context.Context, in *dto.CreateOtherTransactionInput) (*model.OtherTransaction, error) {
	if in.Qty <= 0 {
		return nil, apperror.Validation("qty", "must be > 0, got %d", in.Qty)
	}
	ok, err := uc.repo.BookExists(ctx, in.BookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("book", in.BookID)
	}

	date := in.TxDate
	if date.IsZero() {
		date = model.Today()
	}
	now := time.Now().UTC()
	return &model.OtherTransaction{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		BookID:      in.BookID,
		Qty:         in.Qty,
		TxDate:      date,
		Notes:       in.Notes,
		CategoryIDs: in.CategoryIDs,
	}, nil
}

func (uc *transactionUseCase) CreateOtherTransaction(ctx context.Context, input *dto.CreateOtherTransactionInput) (*model.OtherTransaction, error) {
	ot, err := uc.buildOther(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.CreateOther(ctx, ot); err != nil {
		return nil, translate(err)
	}
	uc.logger.Info("other transaction created",
		zap.Int64("other_transaction_id", ot.ID),
		zap.Int64("book_id", ot.BookID),
		zap.Int64("qty", ot.Qty),
	)
	return ot, nil
}

func (uc *transactionUseCase) GetOtherTransaction(ctx context.Context, id int64) (*model.OtherTransaction, error) {
	ot, err := uc.repo.FindOtherByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ot == nil {
		return nil, apperror.NotFound("other transaction", id)
	}
	return ot, nil
}

func (uc *transactionUseCase) ListOtherTransactions(ctx context.Context, filters *dto.OtherFilters) ([]model.OtherTransaction, int, error) {
	if filters == nil {
		filters = &dto.OtherFilters{}
	}
	return uc.repo.FindAllOther(ctx, filters)
}

func (uc *transactionUseCase) UpdateOtherTransaction(ctx context.Context, input *dto.UpdateOtherTransactionInput) (*model.OtherTransaction, error) {
	existing, err := uc.GetOtherTransaction(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	ot, err := uc.buildOther(ctx, &input.CreateOtherTransactionInput)
	if err != nil {
		return nil, err
	}
	ot.ID = existing.ID
	ot.CreatedAt = existing.CreatedAt

	if err := uc.repo.UpdateOther(ctx, ot); err != nil {
		return nil, translate(err)
	}
	uc.logger.Info("other transaction updated", zap.Int64("other_transaction_id", ot.ID))
	return uc.GetOtherTransaction(ctx, ot.ID)
}

func (uc *transactionUseCase) DeleteOtherTransaction(ctx context.Context, id int64) error {
	if _, err := uc.GetOtherTransaction(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteOther(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("other transaction deleted", zap.Int64("other_transaction_id", id))
	return nil
}

func (uc *transactionUseCase) DeleteOtherTransactions(ctx context.Context, ids []int64) *bulk.Result[int64] {
	res := &bulk.Result[int64]{}
	for _, id := range ids {
		if err := uc.DeleteOtherTransaction(ctx, id); err != nil {
			uc.logger.Warn("bulk other transaction delete failed", zap.Int64("other_transaction_id", id), zap.Error(err))
			res.Fail(id, err)
			continue
		}
		res.Ok(id)
	}
	return res
}
