package usecase_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database/dbtest"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
	"github.com/realdaly/books-log-sub000/internal/party/repository"
	"github.com/realdaly/books-log-sub000/internal/party/usecase"
)

func newUseCase(t *testing.T) (party.UseCase, *sqlx.DB) {
	db := dbtest.Open(t)
	return usecase.NewPartyUseCase(repository.NewSQLiteRepository(db), logger.NewNop()), db
}

func TestCreateParty(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	p, err := uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "Dar al-Kutub", Phone: " 0770 "})
	require.NoError(t, err)
	assert.Equal(t, "0770", p.Phone)

	_, err = uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "Dar al-Kutub"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)

	_, err = uc.CreateParty(ctx, &dto.CreatePartyInput{Name: ""})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreatePartiesSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	n, err := uc.CreateParties(ctx, bulk.SplitLines("X\nX\nY"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, dbtest.Count(t, db, "party"))

	n, err = uc.CreateParties(ctx, []string{"Y", "Z"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeletePartyWithReferencesFails(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	p, err := uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "Buyer"})
	require.NoError(t, err)
	dbtest.Exec(t, db,
		`INSERT INTO book(title) VALUES ('B')`,
		`INSERT INTO "transaction"(type, book_id, party_id, qty, tx_date) VALUES ('sale', 1, 1, 3, '2024-01-02')`,
	)

	err = uc.DeleteParty(ctx, p.ID)
	var refErr *apperror.ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, 1, refErr.References)
	assert.ErrorIs(t, err, apperror.ErrReferentialIntegrity)

	assert.Equal(t, 1, dbtest.Count(t, db, "party"))
	assert.Equal(t, 1, dbtest.Count(t, db, `"transaction"`))
}

func TestDeletePartiesPartialFailure(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	_, err := uc.CreateParties(ctx, []string{"A", "B", "C"})
	require.NoError(t, err)
	dbtest.Exec(t, db,
		`INSERT INTO book(title) VALUES ('B')`,
		`INSERT INTO "transaction"(type, book_id, party_id, qty, tx_date) VALUES ('gift', 1, 2, 1, '2024-01-02')`,
	)

	res := uc.DeleteParties(ctx, []int64{1, 2, 3})
	assert.Equal(t, []int64{1, 3}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(2), res.Failed[0].Item)
	assert.ErrorIs(t, res.Err(), apperror.ErrReferentialIntegrity)
}

func TestUpdatePartyAndList(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)
	dbtest.Exec(t, db, `INSERT INTO party_category(name) VALUES ('library'), ('school')`)

	p, err := uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "مكتبة الأمير", CategoryIDs: []int64{1}})
	require.NoError(t, err)
	_, err = uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "Other", CategoryIDs: []int64{2}})
	require.NoError(t, err)

	_, err = uc.UpdateParty(ctx, &dto.UpdatePartyInput{ID: p.ID, Name: "مكتبة الأمير", Address: "Najaf", CategoryIDs: []int64{1, 2}})
	require.NoError(t, err)

	list, total, err := uc.ListParties(ctx, &dto.PartyFilters{SearchQuery: "امير"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Najaf", list[0].Address)
	assert.Equal(t, []int64{1, 2}, list[0].CategoryIDs)

	list, _, err = uc.ListParties(ctx, &dto.PartyFilters{CategoryIDs: []int64{2}})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	uc, db := newUseCase(t)

	p, err := uc.CreateParty(ctx, &dto.CreatePartyInput{Name: "P"})
	require.NoError(t, err)
	dbtest.Exec(t, db,
		`INSERT INTO book(title) VALUES ('B')`,
		`INSERT INTO "transaction"(type, state, book_id, party_id, qty, tx_date) VALUES
            ('sale', 'final', 1, 1, 5, '2024-01-01'),
            ('sale', 'pending', 1, 1, 2, '2024-01-01'),
            ('sale', 'canceled', 1, 1, 9, '2024-01-01'),
            ('gift', 'final', 1, 1, 1, '2024-01-01'),
            ('loan', 'final', 1, 1, 4, '2024-01-01')`,
	)

	s, err := uc.GetSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PartySummary{
		PartyID: p.ID, Sold: 5, PendingSale: 2, Gifted: 1, Loaned: 4, Transactions: 4,
	}, *s)

	_, err = uc.GetSummary(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
