package dto

import "github.com/realdaly/books-log-sub000/internal/model"

type TransactionFilters struct {
	SearchQuery string // book title or party name
	Types       []model.TxType
	States      []model.TxState
	BookID      int64
	PartyID     int64
	CategoryIDs []int64 // store categories, all required
	DateFrom    *model.Date
	DateTo      *model.Date
	Page        int
	PageSize    int
}

type OtherFilters struct {
	SearchQuery string
	BookID      int64
	CategoryIDs []int64
	DateFrom    *model.Date
	DateTo      *model.Date
	Page        int
	PageSize    int
}
