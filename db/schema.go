package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS ticket_types (
	name VARCHAR(255) PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS extras (
	name VARCHAR(255) PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS prices (
	item_kind VARCHAR(16) NOT NULL,
	item_name VARCHAR(255) NOT NULL,
	entrant_type VARCHAR(255) NOT NULL,
	price_in_cents BIGINT NOT NULL CHECK (price_in_cents >= 0),
	PRIMARY KEY (item_kind, item_name, entrant_type)
);
`

func InitializeDatabaseSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}
