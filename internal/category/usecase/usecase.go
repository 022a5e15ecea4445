package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/category"
	"github.com/realdaly/books-log-sub000/internal/category/dto"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func validate(family model.Family, name string) (string, error) {
	if !family.Valid() {
		return "", apperror.Validation("family", "unknown category family %q", family)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("name", "must not be empty")
	}
	return name, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name, err := validate(input.Family, input.Name)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByName(ctx, input.Family, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Duplicate(string(input.Family)+" category", name)
	}

	c := &model.Category{Name: name}
	if err := uc.repo.Create(ctx, input.Family, c); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Duplicate(string(input.Family)+" category", name)
		}
		return nil, err
	}
	uc.logger.Info("category created", zap.String("family", string(input.Family)), zap.Int64("id", c.ID))
	return c, nil
}

// UpsertCategory returns the existing category of that name or creates it.
// The bool reports whether a row was created.
func (uc *categoryUseCase) UpsertCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, bool, error) {
	name, err := validate(input.Family, input.Name)
	if err != nil {
		return nil, false, err
	}
	existing, err := uc.repo.FindByName(ctx, input.Family, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	c, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: input.Family, Name: name})
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, family model.Family, id int64) (*model.Category, error) {
	if !family.Valid() {
		return nil, apperror.Validation("family", "unknown category family %q", family)
	}
	c, err := uc.repo.FindByID(ctx, family, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound(string(family)+" category", id)
	}
	return c, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, family model.Family) ([]model.Category, error) {
	if !family.Valid() {
		return nil, apperror.Validation("family", "unknown category family %q", family)
	}
	return uc.repo.FindAll(ctx, family)
}

func (uc *categoryUseCase) RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) (*model.Category, error) {
	name, err := validate(input.Family, input.Name)
	if err != nil {
		return nil, err
	}

	c, err := uc.GetCategory(ctx, input.Family, input.ID)
	if err != nil {
		return nil, err
	}
	if c.Name == name {
		return c, nil
	}

	other, err := uc.repo.FindByName(ctx, input.Family, name)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, apperror.Duplicate(string(input.Family)+" category", name)
	}

	if err := uc.repo.Rename(ctx, input.Family, input.ID, name); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Duplicate(string(input.Family)+" category", name)
		}
		return nil, err
	}
	c.Name = name
	return c, nil
}

// DeleteCategory drops the label and its link rows. Tagged entities stay.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, family model.Family, id int64) error {
	if _, err := uc.GetCategory(ctx, family, id); err != nil {
		return err
	}
	links, err := uc.repo.CountLinks(ctx, family, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, family, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted",
		zap.String("family", string(family)),
		zap.Int64("id", id),
		zap.Int("unlinked", links),
	)
	return nil
}
