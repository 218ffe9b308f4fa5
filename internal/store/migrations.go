package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Presets table - stores named animation tuning presets
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			particle_count INTEGER NOT NULL DEFAULT 20000,
			easing REAL NOT NULL DEFAULT 0.08,
			rotation_easing REAL NOT NULL DEFAULT 0.1,
			heartbeat_amplitude REAL NOT NULL DEFAULT 0.05,
			heartbeat_speed REAL NOT NULL DEFAULT 3.0,
			starfield_radius REAL NOT NULL DEFAULT 2.5,
			heart_scale_x REAL NOT NULL DEFAULT 1.0,
			heart_scale_y REAL NOT NULL DEFAULT 1.0,
			heart_scale_z REAL NOT NULL DEFAULT 1.0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
