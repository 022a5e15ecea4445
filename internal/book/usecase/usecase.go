package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/book"
	"github.com/realdaly/books-log-sub000/internal/book/dto"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type bookUseCase struct {
	repo   book.Repository
	logger logger.ZapLogger
}

func NewBookUseCase(repo book.Repository, log logger.ZapLogger) book.UseCase {
	return &bookUseCase{
		repo:   repo,
		logger: log,
	}
}

func validateBook(b *model.Book) error {
	if b.Title == "" {
		return apperror.Validation("title", "must not be empty")
	}
	counts := []struct {
		field string
		value int64
	}{
		{"total_printed", b.TotalPrinted},
		{"sent_to_institution", b.SentToInstitution},
		{"loss_manual", b.LossManual},
	}
	for _, c := range counts {
		if c.value < 0 {
			return apperror.Validation(c.field, "must be >= 0, got %d", c.value)
		}
	}
	prices := []struct {
		field string
		value decimal.Decimal
	}{
		{"unit_price", b.UnitPrice},
		{"retail_price", b.RetailPrice},
		{"wholesale_price", b.WholesalePrice},
	}
	for _, p := range prices {
		if p.value.IsNegative() {
			return apperror.Validation(p.field, "must be >= 0, got %s", p.value)
		}
	}
	return nil
}

func (uc *bookUseCase) CreateBook(ctx context.Context, input *dto.CreateBookInput) (*model.Book, error) {
	title := strings.TrimSpace(input.Title)
	now := time.Now().UTC()
	b := &model.Book{
		BaseModel:         model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Title:             title,
		TotalPrinted:      input.TotalPrinted,
		SentToInstitution: input.SentToInstitution,
		LossManual:        input.LossManual,
		UnitPrice:         input.UnitPrice,
		RetailPrice:       input.RetailPrice,
		WholesalePrice:    input.WholesalePrice,
		CoverImage:        input.CoverImage,
		Notes:             input.Notes,
		CategoryIDs:       input.CategoryIDs,
	}
	if err := validateBook(b); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsTitleUnique(ctx, title, 0)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Duplicate("book", title)
	}

	b.DisplayOrder, err = uc.repo.NextDisplayOrder(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Duplicate("book", title)
		}
		if database.IsForeignKeyViolation(err) {
			return nil, apperror.Validation("category_ids", "unknown book category in %v", input.CategoryIDs)
		}
		return nil, err
	}

	uc.logger.Info("book created", zap.Int64("book_id", b.ID), zap.String("title", b.Title))
	return b, nil
}

func (uc *bookUseCase) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NotFound("book", id)
	}
	return b, nil
}

func (uc *bookUseCase) ListBooks(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error) {
	if filters == nil {
		filters = &dto.BookFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *bookUseCase) UpdateBook(ctx context.Context, input *dto.UpdateBookInput) (*model.Book, error) {
	b, err := uc.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	updated := *b
	updated.Title = title
	updated.TotalPrinted = input.TotalPrinted
	updated.SentToInstitution = input.SentToInstitution
	updated.LossManual = input.LossManual
	updated.UnitPrice = input.UnitPrice
	updated.RetailPrice = input.RetailPrice
	updated.WholesalePrice = input.WholesalePrice
	updated.CoverImage = input.CoverImage
	updated.Notes = input.Notes
	updated.CategoryIDs = input.CategoryIDs
	updated.UpdatedAt = time.Now().UTC()
	if err := validateBook(&updated); err != nil {
		return nil, err
	}

	if b.Title != title {
		unique, err := uc.repo.IsTitleUnique(ctx, title, b.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperror.Duplicate("book", title)
		}
	}

	if err := uc.repo.Update(ctx, &updated); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Duplicate("book", title)
		}
		if database.IsForeignKeyViolation(err) {
			return nil, apperror.Validation("category_ids", "unknown book category in %v", input.CategoryIDs)
		}
		return nil, err
	}

	uc.logger.Info("book updated", zap.Int64("book_id", updated.ID))
	return &updated, nil
}

func (uc *bookUseCase) DeleteBook(ctx context.Context, id int64) error {
	if _, err := uc.GetBook(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("book deleted", zap.Int64("book_id", id))
	return nil
}

// CreateBooks creates one book per title. Titles already stored, or
// repeated within the batch, land in Existing.
func (uc *bookUseCase) CreateBooks(ctx context.Context, titles []string) (*dto.CreateBooksResult, error) {
	res := &dto.CreateBooksResult{}
	seen := make(map[string]bool, len(titles))

	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}
		if seen[title] {
			res.Existing = append(res.Existing, title)
			continue
		}
		seen[title] = true

		b, created, err := uc.EnsureBook(ctx, title)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			uc.logger.Warn("batch book create failed", zap.String("title", title), zap.Error(err))
			res.Failed = append(res.Failed, bulk.Failure[string]{Item: title, Err: err})
			continue
		}
		if created {
			res.Created = append(res.Created, *b)
		} else {
			res.Existing = append(res.Existing, title)
		}
	}

	uc.logger.Info("book batch processed",
		zap.Int("created", len(res.Created)),
		zap.Int("existing", len(res.Existing)),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// EnsureBook returns the book with this exact title, creating a bare one
// when it does not exist yet.
func (uc *bookUseCase) EnsureBook(ctx context.Context, title string) (*model.Book, bool, error) {
	title = strings.TrimSpace(title)
	existing, err := uc.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	b, err := uc.CreateBook(ctx, &dto.CreateBookInput{Title: title})
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (uc *bookUseCase) DeleteBooks(ctx context.Context, ids []int64) *bulk.Result[int64] {
	res := &bulk.Result[int64]{}
	for _, id := range ids {
		if err := uc.DeleteBook(ctx, id); err != nil {
			uc.logger.Warn("bulk book delete failed", zap.Int64("book_id", id), zap.Error(err))
			res.Fail(id, err)
			continue
		}
		res.Ok(id)
	}
	return res
}

func (uc *bookUseCase) ReorderBooks(ctx context.Context, orderedIDs []int64) error {
	for _, id := range orderedIDs {
		if _, err := uc.GetBook(ctx, id); err != nil {
			return err
		}
	}
	if err := uc.repo.Reorder(ctx, orderedIDs); err != nil {
		return err
	}
	uc.logger.Debug("books reordered", zap.Int("count", len(orderedIDs)))
	return nil
}
