package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/realdaly/books-log-sub000/internal/book/dto"
	crepo "github.com/realdaly/books-log-sub000/internal/category/repository"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/textnorm"
)

const bookColumns = `b.id, b.title, b.total_printed, b.sent_to_institution, b.loss_manual,
        b.unit_price, b.retail_price, b.wholesale_price, b.display_order,
        b.cover_image, b.notes, b.created_at, b.updated_at`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

// Create inserts the book and its category links in one transaction.
func (r *SQLiteRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
        INSERT INTO book (
            title, total_printed, sent_to_institution, loss_manual,
            unit_price, retail_price, wholesale_price, display_order,
            cover_image, notes, created_at, updated_at
        )
        VALUES (
            :title, :total_printed, :sent_to_institution, :loss_manual,
            :unit_price, :retail_price, :wholesale_price, :display_order,
            :cover_image, :notes, :created_at, :updated_at
        )
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, b)
		if err != nil {
			return err
		}
		if b.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyBook, b.ID, b.CategoryIDs)
	})
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return r.findOne(ctx, "b.id = ?", id)
}

func (r *SQLiteRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	return r.findOne(ctx, "b.title = ?", title)
}

func (r *SQLiteRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.Book, error) {
	var b model.Book
	query := fmt.Sprintf(`SELECT %s FROM book b WHERE %s LIMIT 1`, bookColumns, cond)
	err := r.DB.GetContext(ctx, &b, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyBook, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.CategoryIDs = links[b.ID]
	return &b, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.BookFilters) ([]model.Book, int, error) {
	var books []model.Book
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "normalize_text(b.title) LIKE ? ESCAPE '\\'")
		args = append(args, textnorm.LikePattern(f.SearchQuery))
	}
	if len(f.CategoryIDs) > 0 {
		cond, catArgs, err := crepo.MatchAll(model.FamilyBook, "b.id", f.CategoryIDs)
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

	countQuery := "SELECT count(*) FROM book b" + whereClause
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	orderBy := "b.display_order ASC, b.id ASC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "title":
			orderBy = "b.title"
		case "created_at":
			orderBy = "b.created_at"
		default:
			orderBy = "b.display_order"
		}
		if strings.ToLower(f.SortOrder) == "desc" {
			orderBy += " DESC"
		} else {
			orderBy += " ASC"
		}
		orderBy += ", b.id ASC"
	}

	query := fmt.Sprintf("SELECT %s FROM book b%s ORDER BY %s", bookColumns, whereClause, orderBy)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	if err := r.DB.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyBook, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range books {
		books[i].CategoryIDs = links[books[i].ID]
	}

	return books, count, nil
}

// Update rewrites every field and swaps the category links.
func (r *SQLiteRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
        UPDATE book
        SET title = :title,
            total_printed = :total_printed,
            sent_to_institution = :sent_to_institution,
            loss_manual = :loss_manual,
            unit_price = :unit_price,
            retail_price = :retail_price,
            wholesale_price = :wholesale_price,
            cover_image = :cover_image,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyBook, b.ID, b.CategoryIDs)
	})
}

// Delete removes the book. Transactions, other-transactions and links
// follow through ON DELETE CASCADE.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM book WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) IsTitleUnique(ctx context.Context, title string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM book WHERE title = ?`
	args := []interface{}{title}
	if excludeID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *SQLiteRepository) NextDisplayOrder(ctx context.Context) (int64, error) {
	var next int64
	err := r.DB.GetContext(ctx, &next, `SELECT COALESCE(MAX(display_order), 0) + 1 FROM book`)
	return next, err
}

// Reorder gives the listed books positions 1..n in the given order and
// packs the remaining books after them, keeping their relative order.
func (r *SQLiteRepository) Reorder(ctx context.Context, orderedIDs []int64) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var current []int64
		if err := tx.SelectContext(ctx, &current, `SELECT id FROM book ORDER BY display_order ASC, id ASC`); err != nil {
			return err
		}
		known := make(map[int64]bool, len(current))
		for _, id := range current {
			known[id] = true
		}

		placed := make(map[int64]bool, len(orderedIDs))
		final := make([]int64, 0, len(current))
		for _, id := range orderedIDs {
			if !known[id] {
				return fmt.Errorf("reorder: book %d: %w", id, sql.ErrNoRows)
			}
			if placed[id] {
				continue
			}
			placed[id] = true
			final = append(final, id)
		}
		for _, id := range current {
			if !placed[id] {
				final = append(final, id)
			}
		}

		stmt, err := tx.PreparexContext(ctx, `UPDATE book SET display_order = ? WHERE id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, id := range final {
			if _, err := stmt.ExecContext(ctx, i+1, id); err != nil {
				return err
			}
		}
		return nil
	})
}
