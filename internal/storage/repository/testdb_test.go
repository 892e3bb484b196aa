package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database with the storefront schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
		CREATE TABLE decks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			format TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			modified_at DATETIME NOT NULL
		);

		CREATE TABLE deck_cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deck_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			name TEXT NOT NULL,
			set_code TEXT NOT NULL DEFAULT '',
			collector_number TEXT NOT NULL DEFAULT '',
			mana_cost TEXT NOT NULL DEFAULT '',
			mana_value REAL NOT NULL DEFAULT 0,
			type_line TEXT NOT NULL DEFAULT '',
			colors TEXT NOT NULL DEFAULT '',
			color_identity TEXT NOT NULL DEFAULT '',
			image_uri TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL,
			category TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (deck_id) REFERENCES decks(id) ON DELETE CASCADE,
			UNIQUE(deck_id, card_id)
		);

		CREATE TABLE cards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			mana_cost TEXT NOT NULL DEFAULT '',
			mana_value REAL NOT NULL DEFAULT 0,
			type_line TEXT NOT NULL DEFAULT '',
			colors TEXT NOT NULL DEFAULT '',
			color_identity TEXT NOT NULL DEFAULT '',
			set_code TEXT NOT NULL DEFAULT '',
			collector_number TEXT NOT NULL DEFAULT '',
			image_uri TEXT NOT NULL DEFAULT '',
			last_updated DATETIME NOT NULL
		);

		CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			total_qty INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			subtotal REAL NOT NULL,
			discount_code TEXT NOT NULL DEFAULT '',
			discount_percent INTEGER NOT NULL DEFAULT 0,
			total REAL NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE order_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			name TEXT NOT NULL,
			set_code TEXT NOT NULL DEFAULT '',
			collector_number TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);

		CREATE TABLE discount_codes (
			code TEXT PRIMARY KEY,
			percent INTEGER NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			expires_at DATETIME,
			created_at DATETIME NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}
