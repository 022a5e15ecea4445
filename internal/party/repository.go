package party

import (
	"context"

	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
)

type Repository interface {
	Create(ctx context.Context, party *model.Party) error
	CreateIgnoringDuplicates(ctx context.Context, names []string) (int, error)
	FindByID(ctx context.Context, id int64) (*model.Party, error)
	FindByName(ctx context.Context, name string) (*model.Party, error)
	FindAll(ctx context.Context, filters *dto.PartyFilters) ([]model.Party, int, error)
	Update(ctx context.Context, party *model.Party) error
	Delete(ctx context.Context, id int64) error

	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)
	CountReferences(ctx context.Context, id int64) (int, error)
	Summary(ctx context.Context, id int64) (*model.PartySummary, error)
}
