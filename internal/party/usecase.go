package party

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
)

type UseCase interface {
	CreateParty(ctx context.Context, input *dto.CreatePartyInput) (*model.Party, error)
	GetParty(ctx context.Context, id int64) (*model.Party, error)
	ListParties(ctx context.Context, filters *dto.PartyFilters) ([]model.Party, int, error)
	UpdateParty(ctx context.Context, input *dto.UpdatePartyInput) (*model.Party, error)
	DeleteParty(ctx context.Context, id int64) error

	// CreateParties inserts every new name and silently skips the rest.
	CreateParties(ctx context.Context, names []string) (int, error)
	EnsureParty(ctx context.Context, name string) (*model.Party, bool, error)
	DeleteParties(ctx context.Context, ids []int64) *bulk.Result[int64]

	GetSummary(ctx context.Context, id int64) (*model.PartySummary, error)
}
