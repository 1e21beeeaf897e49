package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Phrases table - maps each gesture label to the phrase it triggers
		`CREATE TABLE IF NOT EXISTS phrases (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Events table - append-only log of accepted gestures
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			reason TEXT NOT NULL,
			phrase TEXT NOT NULL DEFAULT '',
			accepted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_phrases_label ON phrases(label)`,
		`CREATE INDEX IF NOT EXISTS idx_events_accepted_at ON events(accepted_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
