package model

import "github.com/shopspring/decimal"

type Book struct {
	BaseModel
	Title             string          `db:"title" json:"title"`
	TotalPrinted      int64           `db:"total_printed" json:"total_printed"`
	SentToInstitution int64           `db:"sent_to_institution" json:"sent_to_institution"`
	LossManual        int64           `db:"loss_manual" json:"loss_manual"`
	UnitPrice         decimal.Decimal `db:"unit_price" json:"unit_price"`
	RetailPrice       decimal.Decimal `db:"retail_price" json:"retail_price"`
	WholesalePrice    decimal.Decimal `db:"wholesale_price" json:"wholesale_price"`
	DisplayOrder      int64           `db:"display_order" json:"display_order"` // gallery ordering only
	CoverImage        []byte          `db:"cover_image" json:"-"`
	Notes             string          `db:"notes" json:"notes"`
	CategoryIDs       []int64         `db:"-" json:"category_ids"`
}
