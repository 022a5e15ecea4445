package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/realdaly/books-log-sub000/internal/apperror"
	"github.com/realdaly/books-log-sub000/internal/book"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/logger"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party"
	"github.com/realdaly/books-log-sub000/internal/transaction"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

type Defaults struct {
	Type  model.TxType
	State model.TxState
}

// Importer upserts parties and books by name, then records each row as a
// transaction. A bad row never stops the run.
type Importer struct {
	books    book.UseCase
	parties  party.UseCase
	ledger   transaction.UseCase
	defaults Defaults
	logger   logger.ZapLogger
}

func NewImporter(books book.UseCase, parties party.UseCase, ledger transaction.UseCase, defaults Defaults, log logger.ZapLogger) *Importer {
	if defaults.Type == "" {
		defaults.Type = model.TxTypeGift
	}
	if defaults.State == "" {
		defaults.State = model.TxStateFinal
	}
	return &Importer{
		books:    books,
		parties:  parties,
		ledger:   ledger,
		defaults: defaults,
		logger:   log,
	}
}

func (im *Importer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return im.Apply(ctx, doc)
}

func (im *Importer) Apply(ctx context.Context, doc *Document) (*Report, error) {
	report := &Report{RunID: uuid.New()}
	log := im.logger.With(zap.String("run_id", report.RunID.String()))
	log.Info("import started",
		zap.Int("parties", len(doc.Parties)),
		zap.Int("transactions", len(doc.Transactions)),
	)

	for _, name := range doc.Parties {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := im.ensureParty(ctx, report, name); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Warn("party upsert failed", zap.String("name", name), zap.Error(err))
			report.PartiesFailed = append(report.PartiesFailed, bulk.Failure[string]{Item: name, Err: err})
		}
	}

	for i, row := range doc.Transactions {
		err := im.applyRow(ctx, report, row)
		switch {
		case err == nil:
			report.TransactionsCreated++
		case ctx.Err() != nil:
			return report, ctx.Err()
		case errors.Is(err, apperror.ErrValidation):
			log.Warn("import row skipped", zap.Int("row", i), zap.Error(err))
			report.Skipped = append(report.Skipped, bulk.Failure[int]{Item: i, Err: err})
		default:
			log.Error("import row failed", zap.Int("row", i), zap.Error(err))
			report.Failed = append(report.Failed, bulk.Failure[int]{Item: i, Err: err})
		}
	}

	log.Info("import finished",
		zap.Int("parties_created", report.PartiesCreated),
		zap.Int("books_created", report.BooksCreated),
		zap.Int("transactions_created", report.TransactionsCreated),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}

func (im *Importer) applyRow(ctx context.Context, report *Report, row Row) error {
	title := strings.TrimSpace(row.BookTitle)
	if title == "" {
		return apperror.Validation("book_title", "must not be empty")
	}
	if row.Qty <= 0 {
		return apperror.Validation("qty", "must be > 0, got %d", row.Qty)
	}

	var date model.Date
	if d := strings.TrimSpace(row.Date); d != "" {
		parsed, err := model.ParseDate(d)
		if err != nil {
			return apperror.Validation("date", "%v", err)
		}
		date = parsed
	}

	input := &dto.CreateTransactionInput{
		Type:   row.Type,
		State:  row.State,
		Qty:    row.Qty,
		TxDate: date,
		Notes:  row.Notes,
	}
	if input.Type == "" {
		input.Type = im.defaults.Type
	}
	if input.State == "" {
		input.State = im.defaults.State
	}
	partyName := strings.TrimSpace(row.PartyName)
	if err := transaction.CheckKind(input.Type, input.State, partyName != ""); err != nil {
		return err
	}

	b, created, err := im.books.EnsureBook(ctx, title)
	if err != nil {
		return err
	}
	if created {
		report.BooksCreated++
	}
	input.BookID = b.ID

	if partyName != "" {
		p, err := im.ensureParty(ctx, report, partyName)
		if err != nil {
			return err
		}
		input.PartyID = &p.ID
	}

	_, err = im.ledger.CreateTransaction(ctx, input)
	return err
}

func (im *Importer) ensureParty(ctx context.Context, report *Report, name string) (*model.Party, error) {
	p, created, err := im.parties.EnsureParty(ctx, name)
	if err != nil {
		return nil, err
	}
	if created {
		report.PartiesCreated++
	}
	return p, nil
}
