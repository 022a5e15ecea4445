package model

type Party struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Phone       string  `db:"phone" json:"phone"`
	Address     string  `db:"address" json:"address"`
	Notes       string  `db:"notes" json:"notes"`
	CategoryIDs []int64 `db:"-" json:"category_ids"`
}

// PartySummary totals the non-canceled quantities a party has received, per
// transaction type.
type PartySummary struct {
	PartyID      int64 `db:"party_id" json:"party_id"`
	Sold         int64 `db:"sold" json:"sold"`
	PendingSale  int64 `db:"pending_sale" json:"pending_sale"`
	Gifted       int64 `db:"gifted" json:"gifted"`
	Loaned       int64 `db:"loaned" json:"loaned"`
	Lost         int64 `db:"lost" json:"lost"`
	Transactions int64 `db:"transactions" json:"transactions"`
}
