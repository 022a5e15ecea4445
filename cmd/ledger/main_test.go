package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/realdaly/books-log-sub000/internal/apperror"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type harness struct {
	t      *testing.T
	dbPath string
}

func newHarness(t *testing.T) *harness {
	t.Setenv("LEDGER_CONFIG", "")
	t.Setenv("SQLITE_PATH", "")
	return &harness{t: t, dbPath: filepath.Join(t.TempDir(), "ledger.db")}
}

func (h *harness) exec(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", h.dbPath, "--quiet"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) run(args ...string) string {
	h.t.Helper()
	out, _, err := h.exec("", args...)
	require.NoError(h.t, err, "ledger %s", strings.Join(args, " "))
	return out
}

func TestMigrateReportsVersion(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run("migrate"), "schema version 1")
	assert.Equal(t, "1\n", h.run("config", "get", "schema_version"))
}

func TestBalanceFlow(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run("book", "add", "Scenario", "--printed", "100", "--institution", "40"), "book 1 created")
	h.run("party", "add", "Reader")
	h.run("tx", "add", "-t", "sale", "--book", "1", "--party", "1", "--qty", "5", "--unit-price", "4")
	h.run("tx", "add", "-t", "sale", "--state", "pending", "--book", "1", "--party", "1", "--qty", "3")

	out := h.run("balance", "show", "1")
	assert.Regexp(t, `remaining institution\s+32\n`, out)
	assert.Regexp(t, `current stock\s+92\n`, out)
	assert.Regexp(t, `remaining branches\s+60\n`, out)
	assert.Regexp(t, `revenue\s+20\.00\n`, out)

	h.run("other", "add", "--book", "1", "--qty", "10", "--date", "2024-07-01")

	out = h.run("balance", "show", "1")
	assert.Regexp(t, `other stores\s+10\n`, out)
	assert.Regexp(t, `remaining institution\s+32\n`, out)
	assert.Regexp(t, `current stock\s+82\n`, out)
	assert.Regexp(t, `remaining branches\s+50\n`, out)

	list := h.run("tx", "list", "--type", "sale")
	assert.Contains(t, list, "2 transaction(s)")
	assert.Contains(t, list, "Reader")

	totals := h.run("balance", "totals")
	assert.Regexp(t, `total printed\s+100\n`, totals)
}

func TestTransactionBatchIsAtomic(t *testing.T) {
	h := newHarness(t)
	h.run("book", "add", "One", "--printed", "10")
	h.run("book", "add", "Two", "--printed", "10")

	_, _, err := h.exec("", "tx", "batch", "-t", "gift", "--line", "1:2", "--line", "99:1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, h.run("tx", "list"), "0 transaction(s)")

	out := h.run("tx", "batch", "-t", "store", "--line", "1:2", "--line", "2:3")
	assert.Contains(t, out, "2 transaction(s) recorded")
}

func TestBatchInputsFromStdin(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec("First\nSecond\nFirst\n\n", "book", "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "2 created, 1 already present, 0 failed")

	out, _, err = h.exec("Ali\nAli\nSara\n", "party", "batch", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "2 part(ies) created")
}

func TestPartyDeleteBlocked(t *testing.T) {
	h := newHarness(t)
	h.run("book", "add", "Book", "--printed", "5")
	h.run("party", "add", "Used")
	h.run("party", "add", "Unused")
	h.run("tx", "add", "-t", "gift", "--book", "1", "--party", "1", "--qty", "1")

	out, errOut, err := h.exec("", "party", "delete", "1", "2")
	assert.ErrorIs(t, err, apperror.ErrReferentialIntegrity)
	assert.Contains(t, out, "1 of 2 succeeded, 1 failed")
	assert.Contains(t, errOut, "referenced by 1 transaction(s)")
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	h := newHarness(t)
	h.run("book", "add", "Draft", "--printed", "30", "--unit-price", "2.5")
	h.run("book", "update", "1", "--title", "Final")

	out := h.run("book", "show", "1")
	assert.Contains(t, out, "Final")
	assert.Regexp(t, `Final\s+30\s+0\s+0\s+2\.5`, out)
}

func TestImportCommand(t *testing.T) {
	h := newHarness(t)
	doc := `{
  "parties": ["Library"],
  "transactions": [
    {"book_title": "Imported", "party_name": "Library", "qty": 4, "date": "2024-03-01"},
    {"book_title": "Imported", "party_name": "Library", "qty": 0, "date": "2024-03-02"}
  ]
}`
	out, errOut, err := h.exec(doc, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "1 parties, 1 books, 1 transactions created; 1 skipped")
	assert.Contains(t, errOut, "row 1 skipped")

	assert.Contains(t, h.run("tx", "list", "--type", "gift"), "1 transaction(s)")
}

func TestCategoryCommands(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run("category", "add", "store", "Downtown"), "store category 1 created")
	h.run("category", "rename", "store", "1", "Uptown")
	assert.Contains(t, h.run("category", "list", "store"), "Uptown")

	_, _, err := h.exec("", "category", "list", "shelf")
	assert.ErrorContains(t, err, "unknown category family")

	_, _, err = h.exec("", "category", "add", "store", " Uptown ")
	assert.ErrorIs(t, err, apperror.ErrDuplicateName)
}
