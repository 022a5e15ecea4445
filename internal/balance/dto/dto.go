package dto

type BalanceFilters struct {
	SearchQuery string
	CategoryIDs []int64 // book categories, all required
	Page        int
	PageSize    int
}
