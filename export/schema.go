package export

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	columns TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS indicator_values (
	run_id TEXT NOT NULL,
	time INTEGER NOT NULL, -- unix nanoseconds
	name TEXT NOT NULL,
	value REAL,
	PRIMARY KEY (run_id, time, name)
);

CREATE INDEX IF NOT EXISTS idx_values_name ON indicator_values(run_id, name);
`
