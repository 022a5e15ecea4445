package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaVersion is bumped whenever schemaStatements changes.
const SchemaVersion = 1

// Migrate applies the schema once. Running it again on an up to date
// database is a no-op.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS config (key TEXT PRIMARY KEY, value TEXT NOT NULL);`); err != nil {
		return fmt.Errorf("create config table: %w", err)
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}
	if current >= SchemaVersion {
		return nil
	}

	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx, `
            INSERT INTO config(key, value) VALUES('schema_version', ?)
            ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fmt.Sprint(SchemaVersion))
		return err
	})
}

// CurrentVersion reads the applied schema version, 0 for a fresh database.
func CurrentVersion(ctx context.Context, db sqlx.QueryerContext) (int, error) {
	var versions []int
	if err := sqlx.SelectContext(ctx, db, &versions, `SELECT CAST(value AS INTEGER) FROM config WHERE key = 'schema_version'`); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if len(versions) == 0 {
		return 0, nil
	}
	return versions[0], nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS book (
        id                  INTEGER PRIMARY KEY AUTOINCREMENT,
        title               TEXT NOT NULL UNIQUE,
        total_printed       INTEGER NOT NULL DEFAULT 0 CHECK (total_printed >= 0),
        sent_to_institution INTEGER NOT NULL DEFAULT 0 CHECK (sent_to_institution >= 0),
        loss_manual         INTEGER NOT NULL DEFAULT 0 CHECK (loss_manual >= 0),
        unit_price          TEXT NOT NULL DEFAULT '0',
        retail_price        TEXT NOT NULL DEFAULT '0',
        wholesale_price     TEXT NOT NULL DEFAULT '0',
        display_order       INTEGER NOT NULL DEFAULT 0,
        cover_image         BLOB,
        notes               TEXT NOT NULL DEFAULT '',
        created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    );`,
	`CREATE TABLE IF NOT EXISTS party (
        id         INTEGER PRIMARY KEY AUTOINCREMENT,
        name       TEXT NOT NULL UNIQUE,
        phone      TEXT NOT NULL DEFAULT '',
        address    TEXT NOT NULL DEFAULT '',
        notes      TEXT NOT NULL DEFAULT '',
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    );`,
	`CREATE TABLE IF NOT EXISTS "transaction" (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        type        TEXT NOT NULL CHECK (type IN ('sale','gift','loan','loss','store')),
        state       TEXT NOT NULL DEFAULT 'final' CHECK (state IN ('final','pending','canceled')),
        book_id     INTEGER NOT NULL REFERENCES book(id) ON DELETE CASCADE,
        party_id    INTEGER REFERENCES party(id) ON DELETE RESTRICT,
        qty         INTEGER NOT NULL CHECK (qty > 0),
        unit_price  TEXT,
        total_price TEXT,
        receipt_no  TEXT,
        tx_date     TEXT NOT NULL,
        notes       TEXT NOT NULL DEFAULT '',
        created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        CHECK (type != 'store' OR party_id IS NULL)
    );`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_book ON "transaction"(book_id, type, state);`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_party ON "transaction"(party_id);`,
	`CREATE TABLE IF NOT EXISTS other_transaction (
        id         INTEGER PRIMARY KEY AUTOINCREMENT,
        book_id    INTEGER NOT NULL REFERENCES book(id) ON DELETE CASCADE,
        qty        INTEGER NOT NULL CHECK (qty > 0),
        tx_date    TEXT NOT NULL,
        notes      TEXT NOT NULL DEFAULT '',
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
    );`,
	`CREATE INDEX IF NOT EXISTS idx_other_transaction_book ON other_transaction(book_id);`,

	// category families
	`CREATE TABLE IF NOT EXISTS book_category (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);`,
	`CREATE TABLE IF NOT EXISTS book_category_link (
        book_id     INTEGER NOT NULL REFERENCES book(id) ON DELETE CASCADE,
        category_id INTEGER NOT NULL REFERENCES book_category(id) ON DELETE CASCADE,
        PRIMARY KEY (book_id, category_id)
    );`,
	`CREATE TABLE IF NOT EXISTS party_category (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);`,
	`CREATE TABLE IF NOT EXISTS party_category_link (
        party_id    INTEGER NOT NULL REFERENCES party(id) ON DELETE CASCADE,
        category_id INTEGER NOT NULL REFERENCES party_category(id) ON DELETE CASCADE,
        PRIMARY KEY (party_id, category_id)
    );`,
	`CREATE TABLE IF NOT EXISTS other_category (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);`,
	`CREATE TABLE IF NOT EXISTS other_transaction_category_link (
        other_transaction_id INTEGER NOT NULL REFERENCES other_transaction(id) ON DELETE CASCADE,
        category_id          INTEGER NOT NULL REFERENCES other_category(id) ON DELETE CASCADE,
        PRIMARY KEY (other_transaction_id, category_id)
    );`,
	`CREATE TABLE IF NOT EXISTS store_category (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);`,
	`CREATE TABLE IF NOT EXISTS store_category_link (
        transaction_id INTEGER NOT NULL REFERENCES "transaction"(id) ON DELETE CASCADE,
        category_id    INTEGER NOT NULL REFERENCES store_category(id) ON DELETE CASCADE,
        PRIMARY KEY (transaction_id, category_id)
    );`,

	// derived views
	`CREATE VIEW IF NOT EXISTS vw_book_sales_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'sale' AND state = 'final' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_book_gifts_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'gift' AND state != 'canceled' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_book_loans_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'loan' AND state != 'canceled' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_book_loss_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'loss' AND state != 'canceled' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_book_pending_sales_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'sale' AND state = 'pending' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_book_store_qty AS
        SELECT book_id, SUM(qty) AS qty FROM "transaction"
        WHERE type = 'store' GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_other_stores_total AS
        SELECT book_id, SUM(qty) AS qty FROM other_transaction GROUP BY book_id;`,
	`CREATE VIEW IF NOT EXISTS vw_inventory_central AS
        SELECT
            a.*,
            a.sent_to_institution - (a.sold + a.gifted + a.loaned + a.loss_from_tx + a.pending_sale + a.loss_manual + a.store_outflow) AS remaining_institution,
            a.total_printed - (a.sold + a.gifted + a.loaned + a.loss_from_tx + a.pending_sale + a.loss_manual + a.other_stores_total + a.store_outflow) AS current_stock,
            MAX(0, (a.total_printed - a.sent_to_institution) - a.other_stores_total) AS remaining_branches
        FROM (
            SELECT
                b.id AS book_id,
                b.title,
                b.display_order,
                b.total_printed,
                b.sent_to_institution,
                b.loss_manual,
                COALESCE(s.qty, 0)  AS sold,
                COALESCE(g.qty, 0)  AS gifted,
                COALESCE(l.qty, 0)  AS loaned,
                COALESCE(x.qty, 0)  AS loss_from_tx,
                COALESCE(p.qty, 0)  AS pending_sale,
                COALESCE(st.qty, 0) AS store_outflow,
                COALESCE(o.qty, 0)  AS other_stores_total
            FROM book b
            LEFT JOIN vw_book_sales_qty s          ON s.book_id = b.id
            LEFT JOIN vw_book_gifts_qty g          ON g.book_id = b.id
            LEFT JOIN vw_book_loans_qty l          ON l.book_id = b.id
            LEFT JOIN vw_book_loss_qty x           ON x.book_id = b.id
            LEFT JOIN vw_book_pending_sales_qty p  ON p.book_id = b.id
            LEFT JOIN vw_book_store_qty st         ON st.book_id = b.id
            LEFT JOIN vw_other_stores_total o      ON o.book_id = b.id
        ) a;`,
}
