package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
)

// Document is the bulk import payload.
type Document struct {
	Parties      []string `json:"parties"`
	Transactions []Row    `json:"transactions"`
}

// Row is one imported transaction. Type and State fall back to the
// importer defaults when omitted.
type Row struct {
	BookTitle string        `json:"book_title"`
	PartyName string        `json:"party_name"`
	Qty       int64         `json:"qty"`
	Date      string        `json:"date"`
	Notes     string        `json:"notes"`
	Type      model.TxType  `json:"type,omitempty"`
	State     model.TxState `json:"state,omitempty"`
}

// Report tallies one import run. Rows are referenced by their zero based
// index in Document.Transactions.
type Report struct {
	RunID               uuid.UUID
	PartiesCreated      int
	BooksCreated        int
	TransactionsCreated int
	Skipped             []bulk.Failure[int]
	Failed              []bulk.Failure[int]
	PartiesFailed       []bulk.Failure[string]
}

func (r *Report) String() string {
	return fmt.Sprintf("run %s: %d parties, %d books, %d transactions created; %d skipped, %d failed",
		r.RunID, r.PartiesCreated, r.BooksCreated, r.TransactionsCreated, len(r.Skipped), len(r.Failed)+len(r.PartiesFailed))
}

// Decode reads a Document, rejecting unknown fields.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	return &doc, nil
}
