package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/category"
	"github.com/realdaly/books-log-sub000/internal/category/dto"
	"github.com/realdaly/books-log-sub000/internal/category/repository"
	"github.com/realdaly/books-log-sub000/internal/category/usecase"
	"github.com/realdaly/books-log-sub000/internal/database/dbtest"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func newUseCase(t *testing.T) (category.UseCase, *repository.SQLiteRepository) {
	db := dbtest.Open(t)
	repo := repository.NewSQLiteRepository(db)
	return usecase.NewCategoryUseCase(repo, logger.NewNop()), repo
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	c, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyBook, Name: "  Fiqh "})
	require.NoError(t, err)
	assert.Equal(t, "Fiqh", c.Name)
	assert.Equal(t, model.FamilyBook, c.Family)
	assert.NotZero(t, c.ID)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyBook, Name: "Fiqh"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)

	// families are independent
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyParty, Name: "Fiqh"})
	assert.NoError(t, err)
}

func TestCreateCategoryValidation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyBook, Name: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: "author", Name: "x"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpsertCategory(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	first, created, err := uc.UpsertCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyStore, Name: "Basra"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := uc.UpsertCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyStore, Name: "Basra"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
}

func TestRenameCategory(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	a, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyOther, Name: "A"})
	require.NoError(t, err)
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyOther, Name: "B"})
	require.NoError(t, err)

	_, err = uc.RenameCategory(ctx, &dto.RenameCategoryInput{Family: model.FamilyOther, ID: a.ID, Name: "B"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)

	renamed, err := uc.RenameCategory(ctx, &dto.RenameCategoryInput{Family: model.FamilyOther, ID: a.ID, Name: "C"})
	require.NoError(t, err)
	assert.Equal(t, "C", renamed.Name)

	_, err = uc.RenameCategory(ctx, &dto.RenameCategoryInput{Family: model.FamilyOther, ID: 999, Name: "D"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := uc.ListCategories(ctx, model.FamilyOther)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "C", list[1].Name)
}

func TestDeleteCategoryRemovesOnlyLinks(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase(t)
	db := repo.DB

	dbtest.Exec(t, db, `INSERT INTO book(title) VALUES ('Kitab')`)
	c, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Family: model.FamilyBook, Name: "History"})
	require.NoError(t, err)
	require.NoError(t, repository.ReplaceLinks(ctx, db, model.FamilyBook, 1, []int64{c.ID}))

	n, err := repo.CountLinks(ctx, model.FamilyBook, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, uc.DeleteCategory(ctx, model.FamilyBook, c.ID))

	assert.Equal(t, 1, dbtest.Count(t, db, "book"))
	assert.Equal(t, 0, dbtest.Count(t, db, "book_category_link"))

	err = uc.DeleteCategory(ctx, model.FamilyBook, c.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
