package history

import "database/sql"

// schema for the history database. Raw counts are stored as a msgpack
// blob: they are read back whole or not at all, never queried by key.
const schema = `
CREATE TABLE IF NOT EXISTS draws (
	id                TEXT PRIMARY KEY,
	created_at        TEXT NOT NULL,
	backend           TEXT NOT NULL,
	num_outcomes      INTEGER NOT NULL,
	shots             INTEGER NOT NULL,
	num_qubits        INTEGER NOT NULL,
	random_number     INTEGER NOT NULL,
	normalized_spread REAL NOT NULL,
	tie_broken        INTEGER NOT NULL DEFAULT 0,
	raw_counts        BLOB
);

CREATE INDEX IF NOT EXISTS idx_draws_created_at ON draws(created_at);

CREATE TABLE IF NOT EXISTS calibration_runs (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at        TEXT NOT NULL,
	backend           TEXT NOT NULL,
	num_outcomes      INTEGER NOT NULL,
	shots             INTEGER NOT NULL,
	normalized_spread REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calibration_runs_created_at ON calibration_runs(created_at);
`

// InitSchema creates the history tables if they do not exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
