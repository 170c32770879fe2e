package schema

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) CreateUsersTable() string {
	return `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
}

func (Postgres) CreateEmailIndex() string {
	return `CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`
}

func (Postgres) InsertSeed() string {
	return `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
}

func (Postgres) Rebind(query string) string { return query }

// IsAlreadyExists matches duplicate_table (42P07), duplicate_object (42710)
// and unique_violation (23505).
func (Postgres) IsAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "42P07", "42710", "23505":
		return true
	}
	return false
}
