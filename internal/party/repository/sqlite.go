package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	crepo "github.com/realdaly/books-log-sub000/internal/category/repository"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
	"github.com/realdaly/books-log-sub000/internal/textnorm"
)

const partyColumns = `p.id, p.name, p.phone, p.address, p.notes, p.created_at, p.updated_at`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Party) error {
	query := `
        INSERT INTO party (name, phone, address, notes, created_at, updated_at)
        VALUES (:name, :phone, :address, :notes, :created_at, :updated_at)
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, p)
		if err != nil {
			return err
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyParty, p.ID, p.CategoryIDs)
	})
}

// CreateIgnoringDuplicates inserts the names in one transaction with
// INSERT OR IGNORE and returns how many rows were actually added.
func (r *SQLiteRepository) CreateIgnoringDuplicates(ctx context.Context, names []string) (int, error) {
	var inserted int
	err := database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `
            INSERT OR IGNORE INTO party (name, created_at, updated_at) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, name := range names {
			res, err := stmt.ExecContext(ctx, name, now, now)
			if err != nil {
				return fmt.Errorf("insert party %q: %w", name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Party, error) {
	return r.findOne(ctx, "p.id = ?", id)
}

func (r *SQLiteRepository) FindByName(ctx context.Context, name string) (*model.Party, error) {
	return r.findOne(ctx, "p.name = ?", name)
}

func (r *SQLiteRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.Party, error) {
	var p model.Party
	query := fmt.Sprintf(`SELECT %s FROM party p WHERE %s LIMIT 1`, partyColumns, cond)
	if err := r.DB.GetContext(ctx, &p, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyParty, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.CategoryIDs = links[p.ID]
	return &p, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.PartyFilters) ([]model.Party, int, error) {
	var parties []model.Party
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "normalize_text(p.name) LIKE ? ESCAPE '\\'")
		args = append(args, textnorm.LikePattern(f.SearchQuery))
	}
	if len(f.CategoryIDs) > 0 {
		cond, catArgs, err := crepo.MatchAll(model.FamilyParty, "p.id", f.CategoryIDs)
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

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM party p"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM party p%s ORDER BY p.name ASC", partyColumns, whereClause)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}
	if err := r.DB.SelectContext(ctx, &parties, query, args...); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(parties))
	for i := range parties {
		ids[i] = parties[i].ID
	}
	links, err := crepo.LoadLinks(ctx, r.DB, model.FamilyParty, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range parties {
		parties[i].CategoryIDs = links[parties[i].ID]
	}
	return parties, count, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Party) error {
	query := `
        UPDATE party
        SET name = :name,
            phone = :phone,
            address = :address,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return err
		}
		return crepo.ReplaceLinks(ctx, tx, model.FamilyParty, p.ID, p.CategoryIDs)
	})
}

// Delete fails with a foreign key violation while transactions still point
// at the party.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM party WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM party WHERE name = ?`
	args := []interface{}{name}
	if excludeID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *SQLiteRepository) CountReferences(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM "transaction" WHERE party_id = ?`, id)
	return n, err
}

func (r *SQLiteRepository) Summary(ctx context.Context, id int64) (*model.PartySummary, error) {
	var s model.PartySummary
	query := `
        SELECT
            ? AS party_id,
            COALESCE(SUM(CASE WHEN type = 'sale' AND state = 'final'   THEN qty END), 0) AS sold,
            COALESCE(SUM(CASE WHEN type = 'sale' AND state = 'pending' THEN qty END), 0) AS pending_sale,
            COALESCE(SUM(CASE WHEN type = 'gift' THEN qty END), 0) AS gifted,
            COALESCE(SUM(CASE WHEN type = 'loan' THEN qty END), 0) AS loaned,
            COALESCE(SUM(CASE WHEN type = 'loss' THEN qty END), 0) AS lost,
            COUNT(*) AS transactions
        FROM "transaction"
        WHERE party_id = ? AND state != 'canceled'
    `
	if err := r.DB.GetContext(ctx, &s, query, id, id); err != nil {
		return nil, err
	}
	return &s, nil
}
