package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func TestCheckKind(t *testing.T) {
	tests := []struct {
		name     string
		typ      model.TxType
		state    model.TxState
		hasParty bool
		wantErr  bool
	}{
		{"sale final", model.TxTypeSale, model.TxStateFinal, true, false},
		{"sale pending", model.TxTypeSale, model.TxStatePending, true, false},
		{"empty state is final", model.TxTypeGift, "", true, false},
		{"store without party", model.TxTypeStore, model.TxStateCanceled, false, false},
		{"store with party", model.TxTypeStore, model.TxStateFinal, true, true},
		{"pending gift", model.TxTypeGift, model.TxStatePending, false, true},
		{"pending store", model.TxTypeStore, model.TxStatePending, false, true},
		{"unknown type", "donation", model.TxStateFinal, false, true},
		{"unknown state", model.TxTypeLoan, "open", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckKind(tt.typ, tt.state, tt.hasParty)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}
