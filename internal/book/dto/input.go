package dto

import "github.com/shopspring/decimal"

type CreateBookInput struct {
	Title             string
	TotalPrinted      int64
	SentToInstitution int64
	LossManual        int64
	UnitPrice         decimal.Decimal
	RetailPrice       decimal.Decimal
	WholesalePrice    decimal.Decimal
	CoverImage        []byte
	Notes             string
	CategoryIDs       []int64
}

// UpdateBookInput fully re-specifies the book, category links included.
type UpdateBookInput struct {
	ID                int64
	Title             string
	TotalPrinted      int64
	SentToInstitution int64
	LossManual        int64
	UnitPrice         decimal.Decimal
	RetailPrice       decimal.Decimal
	WholesalePrice    decimal.Decimal
	CoverImage        []byte
	Notes             string
	CategoryIDs       []int64
}
