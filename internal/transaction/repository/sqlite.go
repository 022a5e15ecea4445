package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	crepo "github.com/realdaly/books-log-sub000/internal/category/repository"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/textnorm"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

const transactionSelect = `
    SELECT t.id, t.type, t.state, t.book_id, t.party_id, t.qty,
           t.unit_price, t.total_price, t.receipt_no, t.tx_date, t.notes,
           t.created_at, t.updated_at,
           b.title AS book_title, p.name AS party_name
    FROM "transaction" t
    JOIN book b ON b.id = t.book_id
    LEFT JOIN party p ON p.id = t.party_id`

const otherSelect = `
    SELECT o.id, o.book_id, o.qty, o.tx_date, o.notes, o.created_at, o.updated_at,
           b.title AS book_title
    FROM other_transaction o
    JOIN book b ON b.id = o.book_id`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *model.Transaction) error {
	query := `
        INSERT INTO "transaction" (
            type, state, book_id, party_id, qty, unit_price, total_price,
            receipt_no, tx_date, notes, created_at, updated_at
        )
        VALUES (
            :type, :state, :book_id, :party_id, :qty, :unit_price, :total_price,
            :receipt_no, :tx_date, :notes, :created_at, :updated_at
        )
    `
	res, err := tx.NamedExecContext(ctx, query, t)
	if err != nil {
		return err
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	return crepo.ReplaceLinks(ctx, tx, model.FamilyStore, t.ID, t.CategoryIDs)
}

func (r *SQLiteRepository) Create(ctx context.Context, t *model.Transaction) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		return insertTransaction(ctx, tx, t)
	})
}

// CreateBatch stores all rows or none.
func (r *SQLiteRepository) CreateBatch(ctx context.Context, txs []*model.Transaction) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		for i, t := range txs {
			if err := insertTransaction(ctx, tx, t); err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var t model.Transaction
	err := r.DB.GetContext(ctx, &t, transactionSelect+` WHERE t.id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyStore, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	t.CategoryIDs = links[t.ID]
	return &t, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.TransactionFilters) ([]model.Transaction, int, error) {
	var txs []model.Transaction
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(normalize_text(b.title) LIKE ? ESCAPE '\\' OR normalize_text(COALESCE(p.name, '')) LIKE ? ESCAPE '\\')")
		pattern := textnorm.LikePattern(f.SearchQuery)
		args = append(args, pattern, pattern)
	}
	if len(f.Types) > 0 {
		cond, inArgs, err := sqlx.In("t.type IN (?)", f.Types)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, cond)
		args = append(args, inArgs...)
	}
	if len(f.States) > 0 {
		cond, inArgs, err := sqlx.In("t.state IN (?)", f.States)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, cond)
		args = append(args, inArgs...)
	}
	if f.BookID != 0 {
		conditions = append(conditions, "t.book_id = ?")
		args = append(args, f.BookID)
	}
	if f.PartyID != 0 {
		conditions = append(conditions, "t.party_id = ?")
		args = append(args, f.PartyID)
	}
	if f.DateFrom != nil {
		conditions = append(conditions, "t.tx_date >= ?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		conditions = append(conditions, "t.tx_date <= ?")
		args = append(args, *f.DateTo)
	}
	if len(f.CategoryIDs) > 0 {
		cond, catArgs, err := crepo.MatchAll(model.FamilyStore, "t.id", f.CategoryIDs)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, cond)
		args = append(args, catArgs...)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
    SELECT count(*)
    FROM "transaction" t
    JOIN book b ON b.id = t.book_id
    LEFT JOIN party p ON p.id = t.party_id` + whereClause
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := transactionSelect + whereClause + " ORDER BY t.tx_date DESC, t.id DESC"
	query += pageClause(f.Page, f.PageSize)
	if err := r.DB.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(txs))
	for i := range txs {
		ids[i] = txs[i].ID
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyStore, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range txs {
		txs[i].CategoryIDs = links[txs[i].ID]
	}
	return txs, count, nil
}

func pageClause(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
}

// Update rewrites the row in place. Store links are swapped, so a row that
// stops being a store movement loses them.
func (r *SQLiteRepository) Update(ctx context.Context, t *model.Transaction) error {
	query := `
        UPDATE "transaction"
        SET type = :type,
            state = :state,
            book_id = :book_id,
            party_id = :party_id,
            qty = :qty,
            unit_price = :unit_price,
            total_price = :total_price,
            receipt_no = :receipt_no,
            tx_date = :tx_date,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, t); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyStore, t.ID, t.CategoryIDs)
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) CreateOther(ctx context.Context, ot *model.OtherTransaction) error {
	query := `
        INSERT INTO other_transaction (book_id, qty, tx_date, notes, created_at, updated_at)
        VALUES (:book_id, :qty, :tx_date, :notes, :created_at, :updated_at)
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, ot)
		if err != nil {
			return err
		}
		if ot.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyOther, ot.ID, ot.CategoryIDs)
	})
}

func (r *SQLiteRepository) FindOtherByID(ctx context.Context, id int64) (*model.OtherTransaction, error) {
	var ot model.OtherTransaction
	err := r.DB.GetContext(ctx, &ot, otherSelect+` WHERE o.id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyOther, []int64{ot.ID})
	if err != nil {
		return nil, err
	}
	ot.CategoryIDs = links[ot.ID]
	return &ot, nil
}

func (r *SQLiteRepository) FindAllOther(ctx context.Context, f *dto.OtherFilters) ([]model.OtherTransaction, int, error) {
	var rows []model.OtherTransaction
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "normalize_text(b.title) LIKE ? ESCAPE '\\'")
		args = append(args, textnorm.LikePattern(f.SearchQuery))
	}
	if f.BookID != 0 {
		conditions = append(conditions, "o.book_id = ?")
		args = append(args, f.BookID)
	}
	if f.DateFrom != nil {
		conditions = append(conditions, "o.tx_date >= ?")
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		conditions = append(conditions, "o.tx_date <= ?")
		args = append(args, *f.DateTo)
	}
	if len(f.CategoryIDs) > 0 {
		cond, catArgs, err := crepo.MatchAll(model.FamilyOther, "o.id", f.CategoryIDs)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, cond)
		args = append(args, catArgs...)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT count(*) FROM other_transaction o JOIN book b ON b.id = o.book_id` + whereClause
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := otherSelect + whereClause + " ORDER BY o.tx_date DESC, o.id DESC" + pageClause(f.Page, f.PageSize)
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyOther, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].CategoryIDs = links[rows[i].ID]
	}
	return rows, count, nil
}

func (r *SQLiteRepository) UpdateOther(ctx context.Context, ot *model.OtherTransaction) error {
	query := `
        UPDATE other_transaction
        SET book_id = :book_id,
            qty = :qty,
            tx_date = :tx_date,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, ot); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyOther, ot.ID, ot.CategoryIDs)
	})
}

func (r *SQLiteRepository) DeleteOther(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM other_transaction WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) BookExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT count(*) FROM book WHERE id = ?`, id)
}

func (r *SQLiteRepository) PartyExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT count(*) FROM party WHERE id = ?`, id)
}

func (r *SQLiteRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var n int
	if err := r.DB.GetContext(ctx, &n, query, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
