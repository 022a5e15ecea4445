package model

import "github.com/shopspring/decimal"

type Location string

const (
	LocationInstitution Location = "institution"
	LocationBranches    Location = "branches"
)

// Aggregates are the raw per-book sums read from the ledger.
type Aggregates struct {
	Sold             int64           `db:"sold" json:"sold"`
	Gifted           int64           `db:"gifted" json:"gifted"`
	Loaned           int64           `db:"loaned" json:"loaned"`
	LossFromTx       int64           `db:"loss_from_tx" json:"loss_from_tx"`
	PendingSale      int64           `db:"pending_sale" json:"pending_sale"`
	StoreOutflow     int64           `db:"store_outflow" json:"store_outflow"`
	OtherStoresTotal int64           `db:"other_stores_total" json:"other_stores_total"`
	Revenue          decimal.Decimal `db:"-" json:"revenue"`
}

// InventoryRow is one row of vw_inventory_central.
type InventoryRow struct {
	BookID            int64  `db:"book_id"`
	Title             string `db:"title"`
	DisplayOrder      int64  `db:"display_order"`
	TotalPrinted      int64  `db:"total_printed"`
	SentToInstitution int64  `db:"sent_to_institution"`
	LossManual        int64  `db:"loss_manual"`
	Aggregates
	RemainingInstitution int64 `db:"remaining_institution"`
	CurrentStock         int64 `db:"current_stock"`
	RemainingBranches    int64 `db:"remaining_branches"`
}

// SaleLine is a final sale contributing to revenue.
type SaleLine struct {
	BookID     int64               `db:"book_id"`
	Qty        int64               `db:"qty"`
	UnitPrice  decimal.NullDecimal `db:"unit_price"`
	TotalPrice decimal.NullDecimal `db:"total_price"`
}

type LocationBalance struct {
	Allocated int64 `json:"allocated"`
	Outflows  int64 `json:"outflows"`
	Remaining int64 `json:"remaining"`
}

// BookBalance is the derived stock position of a book.
type BookBalance struct {
	BookID            int64  `json:"book_id"`
	Title             string `json:"title"`
	TotalPrinted      int64  `json:"total_printed"`
	SentToInstitution int64  `json:"sent_to_institution"`
	LossManual        int64  `json:"loss_manual"`
	Aggregates

	TotalOutflows        int64 `json:"total_outflows"`
	InstitutionOutflows  int64 `json:"institution_outflows"`
	RemainingInstitution int64 `json:"remaining_institution"`
	CurrentStock         int64 `json:"current_stock"`
	RemainingBranches    int64 `json:"remaining_branches"`

	Locations map[Location]LocationBalance `json:"locations"`
}
