// Package balance derives per-book stock positions from the ledger.
//
// The functions in this file are pure: they take rows already read from the
// store and never touch the database. The SQL views in internal/database
// encode the same rules so that both paths agree.
//
// Policy:
//   - pending sales are outflows,
//   - manual loss and transaction loss are counted separately and both apply,
//   - store movements and other-store movements are distinct counters,
//   - only the branches remainder is clamped at zero.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/realdaly/books-log-sub000/internal/model"
)

// Aggregate folds a book's ledger rows into raw counters. Row order does not
// matter. Stored balances read these counters from vw_inventory_central;
// Aggregate is the in-memory reference the view is tested against.
func Aggregate(txs []model.Transaction, others []model.OtherTransaction) model.Aggregates {
	var a model.Aggregates
	var sales []model.SaleLine

	for _, t := range txs {
		canceled := t.State == model.TxStateCanceled
		switch t.Type {
		case model.TxTypeSale:
			switch t.State {
			case model.TxStateFinal:
				a.Sold += t.Qty
				sales = append(sales, model.SaleLine{
					BookID: t.BookID, Qty: t.Qty, UnitPrice: t.UnitPrice, TotalPrice: t.TotalPrice,
				})
			case model.TxStatePending:
				a.PendingSale += t.Qty
			}
		case model.TxTypeGift:
			if !canceled {
				a.Gifted += t.Qty
			}
		case model.TxTypeLoan:
			if !canceled {
				a.Loaned += t.Qty
			}
		case model.TxTypeLoss:
			if !canceled {
				a.LossFromTx += t.Qty
			}
		case model.TxTypeStore:
			// counted whatever the state
			a.StoreOutflow += t.Qty
		}
	}
	for _, o := range others {
		a.OtherStoresTotal += o.Qty
	}
	a.Revenue = Revenue(sales)
	return a
}

// Revenue sums final sales, preferring the recorded total over
// qty * unit price. A sale with neither contributes zero.
func Revenue(lines []model.SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(lineRevenue(l))
	}
	return total
}

// RevenueByBook is Revenue grouped by book id.
func RevenueByBook(lines []model.SaleLine) map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal)
	for _, l := range lines {
		out[l.BookID] = out[l.BookID].Add(lineRevenue(l))
	}
	return out
}

func lineRevenue(l model.SaleLine) decimal.Decimal {
	if l.TotalPrice.Valid {
		return l.TotalPrice.Decimal
	}
	unit := decimal.Zero
	if l.UnitPrice.Valid {
		unit = l.UnitPrice.Decimal
	}
	return unit.Mul(decimal.NewFromInt(l.Qty))
}

// Compute derives the balance of one book from its stored fields and
// aggregates. Any derived columns already present on row are ignored.
func Compute(row model.InventoryRow) model.BookBalance {
	a := row.Aggregates
	institutionOutflows := a.Sold + a.Gifted + a.Loaned + a.LossFromTx + a.PendingSale + row.LossManual + a.StoreOutflow
	totalOutflows := institutionOutflows + a.OtherStoresTotal

	branchesAllocated := row.TotalPrinted - row.SentToInstitution
	remainingBranches := branchesAllocated - a.OtherStoresTotal
	if remainingBranches < 0 {
		remainingBranches = 0
	}

	b := model.BookBalance{
		BookID:               row.BookID,
		Title:                row.Title,
		TotalPrinted:         row.TotalPrinted,
		SentToInstitution:    row.SentToInstitution,
		LossManual:           row.LossManual,
		Aggregates:           a,
		TotalOutflows:        totalOutflows,
		InstitutionOutflows:  institutionOutflows,
		RemainingInstitution: row.SentToInstitution - institutionOutflows,
		CurrentStock:         row.TotalPrinted - totalOutflows,
		RemainingBranches:    remainingBranches,
	}
	b.Locations = map[model.Location]model.LocationBalance{
		model.LocationInstitution: {
			Allocated: row.SentToInstitution,
			Outflows:  institutionOutflows,
			Remaining: b.RemainingInstitution,
		},
		model.LocationBranches: {
			Allocated: branchesAllocated,
			Outflows:  a.OtherStoresTotal,
			Remaining: remainingBranches,
		},
	}
	return b
}

// Zero is the balance reported for a book that does not exist.
func Zero(bookID int64) model.BookBalance {
	return Compute(model.InventoryRow{BookID: bookID})
}

// Sum adds balances field by field. Clamped values are summed as reported
// per book, never re-derived from the totals.
func Sum(balances []model.BookBalance) model.BookBalance {
	var t model.BookBalance
	t.Revenue = decimal.Zero
	locs := map[model.Location]model.LocationBalance{
		model.LocationInstitution: {},
		model.LocationBranches:    {},
	}
	for _, b := range balances {
		t.TotalPrinted += b.TotalPrinted
		t.SentToInstitution += b.SentToInstitution
		t.LossManual += b.LossManual
		t.Sold += b.Sold
		t.Gifted += b.Gifted
		t.Loaned += b.Loaned
		t.LossFromTx += b.LossFromTx
		t.PendingSale += b.PendingSale
		t.StoreOutflow += b.StoreOutflow
		t.OtherStoresTotal += b.OtherStoresTotal
		t.Revenue = t.Revenue.Add(b.Revenue)
		t.TotalOutflows += b.TotalOutflows
		t.InstitutionOutflows += b.InstitutionOutflows
		t.RemainingInstitution += b.RemainingInstitution
		t.CurrentStock += b.CurrentStock
		t.RemainingBranches += b.RemainingBranches
		for loc, lb := range b.Locations {
			acc := locs[loc]
			acc.Allocated += lb.Allocated
			acc.Outflows += lb.Outflows
			acc.Remaining += lb.Remaining
			locs[loc] = acc
		}
	}
	t.Locations = locs
	return t
}
