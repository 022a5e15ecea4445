package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
)

type partyUseCase struct {
	repo   party.Repository
	logger logger.ZapLogger
}

func NewPartyUseCase(repo party.Repository, log logger.ZapLogger) party.UseCase {
	return &partyUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *partyUseCase) CreateParty(ctx context.Context, input *dto.CreatePartyInput) (*model.Party, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name", "must not be empty")
	}

	unique, err := uc.repo.IsNameUnique(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Duplicate("party", name)
	}

	now := time.Now().UTC()
	p := &model.Party{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:        name,
		Phone:       strings.TrimSpace(input.Phone),
		Address:     input.Address,
		Notes:       input.Notes,
		CategoryIDs: input.CategoryIDs,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, uc.translate(err, name, input.CategoryIDs)
	}

	uc.logger.Info("party created", zap.Int64("party_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (uc *partyUseCase) translate(err error, name string, categoryIDs []int64) error {
	switch {
	case database.IsUniqueViolation(err):
		return apperror.Duplicate("party", name)
	case database.IsForeignKeyViolation(err):
		return apperror.Validation("category_ids", "unknown party category in %v", categoryIDs)
	}
	return err
}

func (uc *partyUseCase) GetParty(ctx context.Context, id int64) (*model.Party, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("party", id)
	}
	return p, nil
}

func (uc *partyUseCase) ListParties(ctx context.Context, filters *dto.PartyFilters) ([]model.Party, int, error) {
	if filters == nil {
		filters = &dto.PartyFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *partyUseCase) UpdateParty(ctx context.Context, input *dto.UpdatePartyInput) (*model.Party, error) {
	p, err := uc.GetParty(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name", "must not be empty")
	}
	if p.Name != name {
		unique, err := uc.repo.IsNameUnique(ctx, name, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperror.Duplicate("party", name)
		}
	}

	updated := *p
	updated.Name = name
	updated.Phone = strings.TrimSpace(input.Phone)
	updated.Address = input.Address
	updated.Notes = input.Notes
	updated.CategoryIDs = input.CategoryIDs
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, uc.translate(err, name, input.CategoryIDs)
	}
	uc.logger.Info("party updated", zap.Int64("party_id", updated.ID))
	return &updated, nil
}

// DeleteParty refuses while any transaction references the party.
func (uc *partyUseCase) DeleteParty(ctx context.Context, id int64) error {
	if _, err := uc.GetParty(ctx, id); err != nil {
		return err
	}

	refs, err := uc.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &apperror.ReferentialIntegrityError{Entity: "party", ID: id, References: refs}
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return &apperror.ReferentialIntegrityError{Entity: "party", ID: id}
		}
		return err
	}
	uc.logger.Info("party deleted", zap.Int64("party_id", id))
	return nil
}

func (uc *partyUseCase) CreateParties(ctx context.Context, names []string) (int, error) {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}

	inserted, err := uc.repo.CreateIgnoringDuplicates(ctx, clean)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("party batch processed",
		zap.Int("submitted", len(clean)),
		zap.Int("inserted", inserted),
	)
	return inserted, nil
}

// EnsureParty looks the name up and creates the party when missing.
func (uc *partyUseCase) EnsureParty(ctx context.Context, name string) (*model.Party, bool, error) {
	name = strings.TrimSpace(name)
	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	p, err := uc.CreateParty(ctx, &dto.CreatePartyInput{Name: name})
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (uc *partyUseCase) DeleteParties(ctx context.Context, ids []int64) *bulk.Result[int64] {
	res := &bulk.Result[int64]{}
	for _, id := range ids {
		if err := uc.DeleteParty(ctx, id); err != nil {
			uc.logger.Warn("bulk party delete failed", zap.Int64("party_id", id), zap.Error(err))
			res.Fail(id, err)
			continue
		}
		res.Ok(id)
	}
	return res
}

func (uc *partyUseCase) GetSummary(ctx context.Context, id int64) (*model.PartySummary, error) {
	if _, err := uc.GetParty(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.Summary(ctx, id)
}
