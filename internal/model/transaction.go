package model

import "github.com/shopspring/decimal"

type TxType string

const (
	TxTypeSale  TxType = "sale"
	TxTypeGift  TxType = "gift"
	TxTypeLoan  TxType = "loan"
	TxTypeLoss  TxType = "loss"
	TxTypeStore TxType = "store"
)

func (t TxType) Valid() bool {
	switch t {
	case TxTypeSale, TxTypeGift, TxTypeLoan, TxTypeLoss, TxTypeStore:
		return true
	}
	return false
}

type TxState string

const (
	TxStateFinal    TxState = "final"
	TxStatePending  TxState = "pending"
	TxStateCanceled TxState = "canceled"
)

func (s TxState) Valid() bool {
	switch s {
	case TxStateFinal, TxStatePending, TxStateCanceled:
		return true
	}
	return false
}

// Transaction is one ledger entry. Price fields and receipt apply to sales only.
type Transaction struct {
	BaseModel
	Type        TxType              `db:"type" json:"type"`
	State       TxState             `db:"state" json:"state"`
	BookID      int64               `db:"book_id" json:"book_id"`
	PartyID     *int64              `db:"party_id" json:"party_id"`
	Qty         int64               `db:"qty" json:"qty"`
	UnitPrice   decimal.NullDecimal `db:"unit_price" json:"unit_price"`
	TotalPrice  decimal.NullDecimal `db:"total_price" json:"total_price"`
	ReceiptNo   *string             `db:"receipt_no" json:"receipt_no"`
	TxDate      Date                `db:"tx_date" json:"tx_date"`
	Notes       string              `db:"notes" json:"notes"`
	BookTitle   string              `db:"book_title" json:"book_title,omitempty"` // joined
	PartyName   *string             `db:"party_name" json:"party_name,omitempty"` // joined
	CategoryIDs []int64             `db:"-" json:"category_ids"`
}

// OtherTransaction is a movement to a store outside the institution ledger.
type OtherTransaction struct {
	BaseModel
	BookID      int64   `db:"book_id" json:"book_id"`
	Qty         int64   `db:"qty" json:"qty"`
	TxDate      Date    `db:"tx_date" json:"tx_date"`
	Notes       string  `db:"notes" json:"notes"`
	BookTitle   string  `db:"book_title" json:"book_title,omitempty"`
	CategoryIDs []int64 `db:"-" json:"category_ids"`
}
