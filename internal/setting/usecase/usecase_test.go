package usecase_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/database/dbtest"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/setting"
	"github.com/realdaly/books-log-sub000/internal/setting/repository"
	"github.com/realdaly/books-log-sub000/internal/setting/usecase"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	uc := usecase.NewSettingUseCase(repository.NewSQLiteRepository(db), logger.NewNop())

	v, err := uc.Get(ctx, setting.KeySchemaVersion)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(database.SchemaVersion), v)

	_, err = uc.Get(ctx, setting.KeyInstitutionName)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, uc.Set(ctx, setting.KeyInstitutionName, "Dar"))
	require.NoError(t, uc.Set(ctx, setting.KeyInstitutionName, "Dar al-Hadith"))
	v, err = uc.Get(ctx, setting.KeyInstitutionName)
	require.NoError(t, err)
	assert.Equal(t, "Dar al-Hadith", v)

	err = uc.Set(ctx, setting.KeySchemaVersion, "99")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	all, err := uc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		setting.KeySchemaVersion:   strconv.Itoa(database.SchemaVersion),
		setting.KeyInstitutionName: "Dar al-Hadith",
	}, all)
}
