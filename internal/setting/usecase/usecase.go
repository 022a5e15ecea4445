package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/setting"
)

type settingUseCase struct {
	repo   setting.Repository
	logger logger.ZapLogger
}

func NewSettingUseCase(repo setting.Repository, log logger.ZapLogger) setting.UseCase {
	return &settingUseCase{repo: repo, logger: log}
}

func (uc *settingUseCase) Get(ctx context.Context, key string) (string, error) {
	value, ok, err := uc.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &apperror.NotFoundError{Entity: "setting " + key}
	}
	return value, nil
}

// Set writes a setting. The schema version belongs to Migrate and cannot
// be set by hand.
func (uc *settingUseCase) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.Validation("key", "must not be empty")
	}
	if key == setting.KeySchemaVersion {
		return apperror.Validation("key", "%s is managed by migrations", key)
	}
	if err := uc.repo.Set(ctx, key, value); err != nil {
		return err
	}
	uc.logger.Info("setting changed", zap.String("key", key))
	return nil
}

func (uc *settingUseCase) All(ctx context.Context) (map[string]string, error) {
	return uc.repo.All(ctx)
}
