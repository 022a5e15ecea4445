package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/realdaly/books-log-sub000/internal/balance/dto"
	crepo "github.com/realdaly/books-log-sub000/internal/category/repository"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/textnorm"
)

const inventoryColumns = `v.book_id, v.title, v.display_order, v.total_printed, v.sent_to_institution,
        v.loss_manual, v.sold, v.gifted, v.loaned, v.loss_from_tx, v.pending_sale,
        v.store_outflow, v.other_stores_total, v.remaining_institution,
        v.current_stock, v.remaining_branches`

// SQLiteRepository reads vw_inventory_central. It never writes.
type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) FindByBook(ctx context.Context, bookID int64) (*model.InventoryRow, error) {
	var row model.InventoryRow
	query := fmt.Sprintf(`SELECT %s FROM vw_inventory_central v WHERE v.book_id = ?`, inventoryColumns)
	if err := r.DB.GetContext(ctx, &row, query, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.BalanceFilters) ([]model.InventoryRow, int, error) {
	var rows []model.InventoryRow
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "normalize_text(v.title) LIKE ? ESCAPE '\\'")
		args = append(args, textnorm.LikePattern(f.SearchQuery))
	}
	if len(f.CategoryIDs) > 0 {
		cond, catArgs, err := crepo.MatchAll(model.FamilyBook, "v.book_id", f.CategoryIDs)
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

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM vw_inventory_central v"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM vw_inventory_central v%s ORDER BY v.display_order ASC, v.book_id ASC",
		inventoryColumns, whereClause)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

func (r *SQLiteRepository) SaleLines(ctx context.Context, bookIDs []int64) ([]model.SaleLine, error) {
	var lines []model.SaleLine
	query := `
        SELECT book_id, qty, unit_price, total_price
        FROM "transaction"
        WHERE type = 'sale' AND state = 'final'`
	args := []interface{}{}
	if len(bookIDs) > 0 {
		q, inArgs, err := sqlx.In(query+` AND book_id IN (?)`, bookIDs)
		if err != nil {
			return nil, err
		}
		query, args = q, inArgs
	}
	if err := r.DB.SelectContext(ctx, &lines, query, args...); err != nil {
		return nil, err
	}
	return lines, nil
}
