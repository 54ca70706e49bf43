package store

import (
	"database/sql"
)

// Migrate brings the schema to the current version, tracked through
// PRAGMA user_version so re-running is a no-op.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS dogs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  breed TEXT NOT NULL DEFAULT '',
  sex TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  energy_level TEXT NOT NULL DEFAULT '',
  age_years REAL,
  play_styles TEXT NOT NULL DEFAULT '[]',
  potty_trained INTEGER,
  good_with_kids INTEGER,
  good_with_cats INTEGER,
  good_with_dogs INTEGER,
  good_with_small_animals INTEGER,
  first_time_friendly INTEGER,
  hypoallergenic INTEGER,
  shedding_level TEXT NOT NULL DEFAULT '',
  barking_level TEXT NOT NULL DEFAULT '',
  max_alone_hours REAL,
  shelter_name TEXT NOT NULL DEFAULT '',
  photo_key TEXT NOT NULL DEFAULT '',
  source_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS quiz_responses (
  session_id TEXT PRIMARY KEY,
  play_styles TEXT NOT NULL DEFAULT '[]',
  energy_preference TEXT NOT NULL DEFAULT '',
  size_preference TEXT NOT NULL DEFAULT '[]',
  age_preference TEXT NOT NULL DEFAULT '[]',
  potty_requirement TEXT NOT NULL DEFAULT '',
  kids_in_home TEXT NOT NULL DEFAULT '',
  pets_in_home TEXT NOT NULL DEFAULT '[]',
  cats_in_home TEXT NOT NULL DEFAULT '',
  first_time_owner TEXT NOT NULL DEFAULT '',
  allergy_sensitivity TEXT NOT NULL DEFAULT '',
  shedding_levels TEXT NOT NULL DEFAULT '[]',
  noise_preference TEXT NOT NULL DEFAULT '',
  alone_time TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS photos (
  key TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  bytes BLOB NOT NULL,
  fetched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_dogs_created_at
ON dogs(created_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_dogs_source_id
ON dogs(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
