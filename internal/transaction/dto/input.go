package dto

import (
	"github.com/shopspring/decimal"

	"github.com/realdaly/books-log-sub000/internal/model"
)

type CreateTransactionInput struct {
	Type        model.TxType
	State       model.TxState // defaults to final
	BookID      int64
	PartyID     *int64
	Qty         int64
	UnitPrice   decimal.NullDecimal
	TotalPrice  decimal.NullDecimal
	ReceiptNo   string
	TxDate      model.Date // defaults to today
	Notes       string
	CategoryIDs []int64 // store categories, type store only
}

type UpdateTransactionInput struct {
	ID int64
	CreateTransactionInput
}

// TransactionLine is one book of a multi-book entry.
type TransactionLine struct {
	BookID     int64
	Qty        int64
	UnitPrice  decimal.NullDecimal
	TotalPrice decimal.NullDecimal
}

// CreateTransactionBatchInput records the same movement for several books
// at once. Either every line is stored or none is.
type CreateTransactionBatchInput struct {
	Type        model.TxType
	State       model.TxState
	PartyID     *int64
	ReceiptNo   string
	TxDate      model.Date
	Notes       string
	CategoryIDs []int64
	Lines       []TransactionLine
}

type CreateOtherTransactionInput struct {
	BookID      int64
	Qty         int64
	TxDate      model.Date
	Notes       string
	CategoryIDs []int64
}

type UpdateOtherTransactionInput struct {
	ID int64
	CreateOtherTransactionInput
}
