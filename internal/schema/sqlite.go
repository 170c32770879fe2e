package schema

// SQLite is the embedded variant. Every statement carries its own
// IF NOT EXISTS / ON CONFLICT form, so no error classification is needed.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) CreateUsersTable() string {
	return `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
}

func (SQLite) CreateEmailIndex() string {
	return `CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`
}

func (SQLite) InsertSeed() string {
	return `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
}

func (SQLite) Rebind(query string) string { return query }

func (SQLite) IsAlreadyExists(err error) bool { return false }
