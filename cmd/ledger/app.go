package main

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/config"
	"github.com/realdaly/books-log-sub000/internal/balance"
	balRepoPkg "github.com/realdaly/books-log-sub000/internal/balance/repository"
	balUCPkg "github.com/realdaly/books-log-sub000/internal/balance/usecase"
	"github.com/realdaly/books-log-sub000/internal/book"
	bookRepoPkg "github.com/realdaly/books-log-sub000/internal/book/repository"
	bookUCPkg "github.com/realdaly/books-log-sub000/internal/book/usecase"
	"github.com/realdaly/books-log-sub000/internal/category"
	catRepoPkg "github.com/realdaly/books-log-sub000/internal/category/repository"
	catUCPkg "github.com/realdaly/books-log-sub000/internal/category/usecase"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/importer"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party"
	partyRepoPkg "github.com/realdaly/books-log-sub000/internal/party/repository"
	partyUCPkg "github.com/realdaly/books-log-sub000/internal/party/usecase"
	"github.com/realdaly/books-log-sub000/internal/setting"
	setRepoPkg "github.com/realdaly/books-log-sub000/internal/setting/repository"
	setUCPkg "github.com/realdaly/books-log-sub000/internal/setting/usecase"
	"github.com/realdaly/books-log-sub000/internal/transaction"
	txRepoPkg "github.com/realdaly/books-log-sub000/internal/transaction/repository"
	txUCPkg "github.com/realdaly/books-log-sub000/internal/transaction/usecase"
)

// app holds everything a command needs once the store is open.
type app struct {
	cfg    *config.Config
	logger logger.ZapLogger
	db     *sqlx.DB

	books      book.UseCase
	parties    party.UseCase
	ledger     transaction.UseCase
	categories category.UseCase
	balances   balance.UseCase
	settings   setting.UseCase
	importer   *importer.Importer
}

type options struct {
	dbPath string
	quiet  bool
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.SQLite.Path = opts.dbPath
	}

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	var appLogger logger.ZapLogger
	if opts.quiet {
		appLogger = logger.NewNop()
	} else {
		appLogger = logger.NewZapLogger(logConfig)
	}

	db, err := database.Open(ctx, &database.Config{
		Path:         cfg.SQLite.Path,
		BusyTimeout:  time.Duration(cfg.SQLite.BusyTimeoutMS) * time.Millisecond,
		MaxOpenConns: cfg.SQLite.MaxOpenConns,
	})
	if err != nil {
		appLogger.Error("could not open ledger store", zap.String("path", cfg.SQLite.Path), zap.Error(err))
		return nil, err
	}
	appLogger.Debug("ledger store open", zap.String("path", cfg.SQLite.Path))

	catRepo := catRepoPkg.NewSQLiteRepository(db)
	bookRepo := bookRepoPkg.NewSQLiteRepository(db)
	partyRepo := partyRepoPkg.NewSQLiteRepository(db)
	txRepo := txRepoPkg.NewSQLiteRepository(db)
	balRepo := balRepoPkg.NewSQLiteRepository(db)
	setRepo := setRepoPkg.NewSQLiteRepository(db)

	a := &app{
		cfg:        cfg,
		logger:     appLogger,
		db:         db,
		categories: catUCPkg.NewCategoryUseCase(catRepo, appLogger.Named("category")),
		books:      bookUCPkg.NewBookUseCase(bookRepo, appLogger.Named("book")),
		parties:    partyUCPkg.NewPartyUseCase(partyRepo, appLogger.Named("party")),
		ledger:     txUCPkg.NewTransactionUseCase(txRepo, appLogger.Named("transaction")),
		balances:   balUCPkg.NewBalanceUseCase(balRepo, appLogger.Named("balance")),
		settings:   setUCPkg.NewSettingUseCase(setRepo, appLogger.Named("setting")),
	}
	a.importer = importer.NewImporter(a.books, a.parties, a.ledger, importer.Defaults{
		Type:  model.TxType(cfg.Import.DefaultType),
		State: model.TxState(cfg.Import.DefaultState),
	}, appLogger.Named("import"))
	return a, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.db.Close()
}
