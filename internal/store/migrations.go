package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Runs table - one row per train/evaluate invocation
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			train_fraction REAL NOT NULL,
			strategy TEXT NOT NULL CHECK(strategy IN ('last', 'aligned')),
			train_count INTEGER NOT NULL,
			test_count INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Predictions table - nearest template per classified test record
		`CREATE TABLE IF NOT EXISTS predictions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			record_id INTEGER NOT NULL,
			gesture INTEGER NOT NULL,
			predicted INTEGER NOT NULL,
			cost REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_predictions_run_id ON predictions(run_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
