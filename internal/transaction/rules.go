package transaction

import (
	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/model"
)

// CheckKind applies the rules that depend only on type, state and whether a
// party is named. An empty state means final.
func CheckKind(typ model.TxType, state model.TxState, hasParty bool) error {
	if !typ.Valid() {
		return apperror.Validation("type", "unknown transaction type %q", typ)
	}
	if state == "" {
		state = model.TxStateFinal
	}
	if !state.Valid() {
		return apperror.Validation("state", "unknown transaction state %q", state)
	}
	if state == model.TxStatePending && typ != model.TxTypeSale {
		return apperror.Validation("state", "only sales can be pending")
	}
	if typ == model.TxTypeStore && hasParty {
		return apperror.Validation("party_id", "store movements have no party")
	}
	return nil
}
