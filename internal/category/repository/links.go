package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/realdaly/books-log-sub000/internal/model"
)

// ReplaceLinks makes the owner's link set exactly categoryIDs
// (delete all, then reinsert). Run it inside the owner's write transaction.
func ReplaceLinks(ctx context.Context, e sqlx.ExtContext, family model.Family, ownerID int64, categoryIDs []int64) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, family.LinkTable(), family.OwnerColumn())
	if _, err := e.ExecContext(ctx, del, ownerID); err != nil {
		return fmt.Errorf("clear %s links: %w", family, err)
	}

	ins := fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s, category_id) VALUES (?, ?)`, family.LinkTable(), family.OwnerColumn())
	for _, cid := range categoryIDs {
		if _, err := e.ExecContext(ctx, ins, ownerID, cid); err != nil {
			return fmt.Errorf("link %s category %d: %w", family, cid, err)
		}
	}
	return nil
}

// LoadLinks returns the sorted category ids of each owner.
func LoadLinks(ctx context.Context, q sqlx.QueryerContext, family model.Family, ownerIDs []int64) (map[int64][]int64, error) {
	links := make(map[int64][]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return links, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT %s AS owner_id, category_id FROM %s WHERE %s IN (?)`,
			family.OwnerColumn(), family.LinkTable(), family.OwnerColumn()),
		ownerIDs)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		OwnerID    int64 `db:"owner_id"`
		CategoryID int64 `db:"category_id"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		links[row.OwnerID] = append(links[row.OwnerID], row.CategoryID)
	}
	for id := range links {
		sort.Slice(links[id], func(i, j int) bool { return links[id][i] < links[id][j] })
	}
	return links, nil
}

// MatchAll builds a condition selecting owners tagged with every one of
// categoryIDs (conjunctive filter).
func MatchAll(family model.Family, ownerExpr string, categoryIDs []int64) (string, []interface{}, error) {
	unique := dedupe(categoryIDs)
	cond := fmt.Sprintf(`%s IN (
        SELECT %s FROM %s WHERE category_id IN (?)
        GROUP BY %s HAVING COUNT(DISTINCT category_id) = ?)`,
		ownerExpr, family.OwnerColumn(), family.LinkTable(), family.OwnerColumn())
	return sqlx.In(cond, unique, len(unique))
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
