package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/realdaly/books-log-sub000/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, family model.Family, c *model.Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, family.Table())
	res, err := r.DB.ExecContext(ctx, query, c.Name)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	c.Family = family
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, family model.Family, id int64) (*model.Category, error) {
	return r.findOne(ctx, family, "id = ?", id)
}

func (r *SQLiteRepository) FindByName(ctx context.Context, family model.Family, name string) (*model.Category, error) {
	return r.findOne(ctx, family, "name = ?", name)
}

func (r *SQLiteRepository) findOne(ctx context.Context, family model.Family, cond string, arg interface{}) (*model.Category, error) {
	var c model.Category
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE %s LIMIT 1`, family.Table(), cond)
	err := r.DB.GetContext(ctx, &c, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.Family = family
	return &c, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, family model.Family) ([]model.Category, error) {
	var categories []model.Category
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name ASC`, family.Table())
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Family = family
	}
	return categories, nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, family model.Family, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = ? WHERE id = ?`, family.Table())
	_, err := r.DB.ExecContext(ctx, query, name, id)
	return err
}

// Delete removes the category; link rows go with it through ON DELETE CASCADE.
func (r *SQLiteRepository) Delete(ctx context.Context, family model.Family, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, family.Table())
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *SQLiteRepository) CountLinks(ctx context.Context, family model.Family, id int64) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE category_id = ?`, family.LinkTable())
	err := r.DB.GetContext(ctx, &n, query, id)
	return n, err
}
