package usecase_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/book"
	"github.com/realdaly/books-log-sub000/internal/book/dto"
	"github.com/realdaly/books-log-sub000/internal/book/repository"
	"github.com/realdaly/books-log-sub000/internal/book/usecase"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database/dbtest"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func newUseCase(t *testing.T) (book.UseCase, *sqlx.DB) {
	db := dbtest.Open(t)
	return usecase.NewBookUseCase(repository.NewSQLiteRepository(db), logger.NewNop()), db
}

func titlesOf(books []model.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{
		Title:             " Nahj ",
		TotalPrinted:      100,
		SentToInstitution: 40,
		UnitPrice:         decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nahj", b.Title)
	assert.Equal(t, int64(1), b.DisplayOrder)

	got, err := uc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalPrinted)
	assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("12.5")))

	_, err = uc.CreateBook(ctx, &dto.CreateBookInput{Title: "Nahj"})
	var dup *apperror.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Nahj", dup.Name)
}

func TestCreateBookValidation(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	cases := map[string]*dto.CreateBookInput{
		"empty title":      {Title: "  "},
		"negative printed": {Title: "a", TotalPrinted: -1},
		"negative loss":    {Title: "a", LossManual: -3},
		"negative price":   {Title: "a", RetailPrice: decimal.NewFromInt(-1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateBook(ctx, in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
	assert.Zero(t, dbtest.Count(t, db, "book"))
}

func TestCreateBooksPartitions(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	_, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "Old"})
	require.NoError(t, err)

	res, err := uc.CreateBooks(ctx, bulk.SplitLines("New A\n\nOld\nNew B\nNew A\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"New A", "New B"}, titlesOf(res.Created))
	assert.Equal(t, []string{"Old", "New A"}, res.Existing)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 3, dbtest.Count(t, db, "book"))
}

func TestUpdateBookReplacesCategories(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)
	dbtest.Exec(t, db, `INSERT INTO book_category(name) VALUES ('c1'), ('c2'), ('c3')`)

	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "T", CategoryIDs: []int64{1, 2}})
	require.NoError(t, err)

	got, err := uc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got.CategoryIDs)

	_, err = uc.UpdateBook(ctx, &dto.UpdateBookInput{ID: b.ID, Title: "T2", TotalPrinted: 7, CategoryIDs: []int64{3}})
	require.NoError(t, err)

	got, err = uc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, int64(7), got.TotalPrinted)
	assert.Equal(t, []int64{3}, got.CategoryIDs)

	_, err = uc.UpdateBook(ctx, &dto.UpdateBookInput{ID: b.ID, Title: "T2", CategoryIDs: []int64{99}})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	got, err = uc.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, got.CategoryIDs, "failed update leaves links untouched")
}

func TestUpdateBookDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "A"})
	require.NoError(t, err)
	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "B"})
	require.NoError(t, err)

	_, err = uc.UpdateBook(ctx, &dto.UpdateBookInput{ID: b.ID, Title: "A"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)

	_, err = uc.UpdateBook(ctx, &dto.UpdateBookInput{ID: 404, Title: "Z"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteBookCascades(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "Gone"})
	require.NoError(t, err)
	dbtest.Exec(t, db,
		`INSERT INTO book_category(name) VALUES ('c')`,
		`INSERT INTO book_category_link(book_id, category_id) VALUES (1, 1)`,
		`INSERT INTO "transaction"(type, book_id, qty, tx_date) VALUES ('gift', 1, 2, '2024-03-01')`,
		`INSERT INTO other_transaction(book_id, qty, tx_date) VALUES (1, 4, '2024-03-01')`,
	)

	require.NoError(t, uc.DeleteBook(ctx, b.ID))
	assert.Zero(t, dbtest.Count(t, db, `"transaction"`))
	assert.Zero(t, dbtest.Count(t, db, "other_transaction"))
	assert.Zero(t, dbtest.Count(t, db, "book_category_link"))
	assert.Equal(t, 1, dbtest.Count(t, db, "book_category"))
}

func TestDeleteBooksReportsFailures(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	a, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "A"})
	require.NoError(t, err)
	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "B"})
	require.NoError(t, err)

	res := uc.DeleteBooks(ctx, []int64{a.ID, 77, b.ID})
	assert.Equal(t, []int64{a.ID, b.ID}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(77), res.Failed[0].Item)
	assert.ErrorIs(t, res.Failed[0].Err, apperror.ErrNotFound)
	assert.Equal(t, "2 of 3 succeeded, 1 failed", res.Summary())
}

func TestReorderBooksIsDense(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	for _, title := range []string{"A", "B", "C", "D"} {
		_, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, uc.ReorderBooks(ctx, []int64{3, 1}))

	books, total, err := uc.ListBooks(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []string{"C", "A", "B", "D"}, titlesOf(books))
	for i, b := range books {
		assert.Equal(t, int64(i+1), b.DisplayOrder)
	}

	err = uc.ReorderBooks(ctx, []int64{2, 42})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListBooksFilters(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)
	dbtest.Exec(t, db, `INSERT INTO book_category(name) VALUES ('x'), ('y')`)

	_, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: "الأخلاق الإسلامية", CategoryIDs: []int64{1, 2}})
	require.NoError(t, err)
	_, err = uc.CreateBook(ctx, &dto.CreateBookInput{Title: "اصول الفقه", CategoryIDs: []int64{1}})
	require.NoError(t, err)
	_, err = uc.CreateBook(ctx, &dto.CreateBookInput{Title: "Other", CategoryIDs: []int64{2}})
	require.NoError(t, err)

	books, _, err := uc.ListBooks(ctx, &dto.BookFilters{SearchQuery: "اسلاميه"})
	require.NoError(t, err)
	assert.Equal(t, []string{"الأخلاق الإسلامية"}, titlesOf(books))

	books, _, err = uc.ListBooks(ctx, &dto.BookFilters{SearchQuery: "أصول"})
	require.NoError(t, err)
	assert.Equal(t, []string{"اصول الفقه"}, titlesOf(books))

	books, total, err := uc.ListBooks(ctx, &dto.BookFilters{CategoryIDs: []int64{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"الأخلاق الإسلامية"}, titlesOf(books))

	books, total, err = uc.ListBooks(ctx, &dto.BookFilters{SortBy: "title", SortOrder: "asc", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, books, 1)
}

func TestListBooksSearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)
	dbtest.Exec(t, db,
		`INSERT INTO book(title) VALUES ('100% Arabic')`,
		`INSERT INTO book(title) VALUES ('snake_case')`,
		`INSERT INTO book(title) VALUES ('Plain')`,
	)

	tests := []struct {
		query string
		want  []string
	}{
		{"%", []string{"100% Arabic"}},
		{"_", []string{"snake_case"}},
		{`\`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			books, total, err := uc.ListBooks(ctx, &dto.BookFilters{SearchQuery: tt.query})
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), total)
			assert.ElementsMatch(t, tt.want, titlesOf(books))
		})
	}
}
