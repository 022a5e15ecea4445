package dto

type PartyFilters struct {
	SearchQuery string
	CategoryIDs []int64
	Page        int
	PageSize    int
}
