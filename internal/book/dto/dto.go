package dto

import (
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type BookFilters struct {
	SearchQuery string  // normalized match on title
	CategoryIDs []int64 // book must carry all of them
	SortBy      string  // display_order, title, created_at
	SortOrder   string  // asc, desc
	Page        int
	PageSize    int
}

// CreateBooksResult partitions a batch of titles.
type CreateBooksResult struct {
	Created  []model.Book
	Existing []string
	Failed   []bulk.Failure[string]
}
