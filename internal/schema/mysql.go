package schema

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) CreateUsersTable() string {
	return `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`
}

// mysql has no IF NOT EXISTS for CREATE INDEX; the duplicate-key-name
// error (1061) is absorbed by IsAlreadyExists instead.
func (MySQL) CreateEmailIndex() string {
	return `CREATE INDEX idx_users_email ON users (email)`
}

func (MySQL) InsertSeed() string {
	return `INSERT IGNORE INTO users (username, email) VALUES (?, ?)`
}

func (MySQL) Rebind(query string) string { return rebindQuestion(query) }

// IsAlreadyExists matches table exists (1050), duplicate key name (1061)
// and duplicate entry (1062).
func (MySQL) IsAlreadyExists(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case 1050, 1061, 1062:
		return true
	}
	return false
}
