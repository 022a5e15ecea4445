package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	brepo "github.com/realdaly/books-log-sub000/internal/book/repository"
	buc "github.com/realdaly/books-log-sub000/internal/book/usecase"
	"github.com/realdaly/books-log-sub000/internal/database/dbtest"
	"github.com/realdaly/books-log-sub000/internal/importer"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	prepo "github.com/realdaly/books-log-sub000/internal/party/repository"
	puc "github.com/realdaly/books-log-sub000/internal/party/usecase"
	trepo "github.com/realdaly/books-log-sub000/internal/transaction/repository"
	tuc "github.com/realdaly/books-log-sub000/internal/transaction/usecase"
)

func newImporter(t *testing.T, defaults importer.Defaults) (*importer.Importer, *sqlx.DB) {
	db := dbtest.Open(t)
	log := logger.NewNop()
	return importer.NewImporter(
		buc.NewBookUseCase(brepo.NewSQLiteRepository(db), log),
		puc.NewPartyUseCase(prepo.NewSQLiteRepository(db), log),
		tuc.NewTransactionUseCase(trepo.NewSQLiteRepository(db), log),
		defaults,
		log,
	), db
}

const document = `{
  "parties": ["Ali", "Huda", "Ali"],
  "transactions": [
    {"book_title": "Book A", "party_name": "Ali", "qty": 3, "date": "2024-02-01", "notes": "first"},
    {"book_title": "Book B", "party_name": "Zaid", "qty": 1, "date": ""},
    {"book_title": "Book A", "party_name": "", "qty": 0, "date": "2024-02-01"},
    {"book_title": "", "party_name": "Ali", "qty": 2, "date": "2024-02-01"},
    {"book_title": "Book C", "party_name": "Ali", "qty": 2, "date": "01/02/2024"},
    {"book_title": "Book A", "party_name": "Huda", "qty": 4, "date": "2024-02-03", "type": "sale", "state": "pending"}
  ]
}`

func TestImportRun(t *testing.T) {
	ctx := context.Background()
	im, db := newImporter(t, importer.Defaults{})

	report, err := im.Run(ctx, strings.NewReader(document))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.Equal(t, 3, report.PartiesCreated, "Ali, Huda, then Zaid from a row")
	assert.Equal(t, 2, report.BooksCreated)
	assert.Equal(t, 3, report.TransactionsCreated)
	assert.Empty(t, report.Failed)

	skipped := make([]int, len(report.Skipped))
	for i, s := range report.Skipped {
		skipped[i] = s.Item
		assert.ErrorIs(t, s.Err, apperror.ErrValidation)
	}
	assert.Equal(t, []int{2, 3, 4}, skipped)

	assert.Equal(t, 3, dbtest.Count(t, db, "party"))
	assert.Equal(t, 2, dbtest.Count(t, db, "book"), "rejected rows create nothing")
	assert.Equal(t, 2, dbtest.Count(t, db, `"transaction" WHERE type = 'gift' AND state = 'final'`))
	assert.Equal(t, 1, dbtest.Count(t, db, `"transaction" WHERE type = 'sale' AND state = 'pending'`))
}

func TestImportIsIdempotentForNames(t *testing.T) {
	ctx := context.Background()
	im, db := newImporter(t, importer.Defaults{Type: model.TxTypeLoan})

	doc := &importer.Document{
		Parties:      []string{"Ali"},
		Transactions: []importer.Row{{BookTitle: "Book A", PartyName: "Ali", Qty: 1}},
	}
	first, err := im.Apply(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, first.PartiesCreated)
	assert.Equal(t, 1, first.BooksCreated)

	second, err := im.Apply(ctx, doc)
	require.NoError(t, err)
	assert.Zero(t, second.PartiesCreated)
	assert.Zero(t, second.BooksCreated)
	assert.Equal(t, 1, second.TransactionsCreated)
	assert.NotEqual(t, first.RunID, second.RunID)

	assert.Equal(t, 2, dbtest.Count(t, db, `"transaction" WHERE type = 'loan'`))
}

func TestImportRowsRejectedByKindWriteNothing(t *testing.T) {
	ctx := context.Background()
	im, db := newImporter(t, importer.Defaults{})

	report, err := im.Apply(ctx, &importer.Document{
		Transactions: []importer.Row{
			{BookTitle: "B", PartyName: "P", Qty: 1, Type: model.TxTypeStore},
			{BookTitle: "C", Qty: 1, Type: model.TxTypeGift, State: model.TxStatePending},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Skipped, 2)
	for _, s := range report.Skipped {
		assert.ErrorIs(t, s.Err, apperror.ErrValidation)
	}
	assert.Zero(t, report.TransactionsCreated)
	assert.Zero(t, report.BooksCreated)
	assert.Zero(t, report.PartiesCreated)

	assert.Zero(t, dbtest.Count(t, db, "book"))
	assert.Zero(t, dbtest.Count(t, db, "party"))
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := importer.Decode(strings.NewReader(`{"parties": [], "books": []}`))
	assert.Error(t, err)

	_, err = importer.Decode(strings.NewReader(`not json`))
	assert.Error(t, err)
}
