package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDriver(t *testing.T) {
	for driver, name := range map[string]string{
		"postgres": "postgres",
		"mysql":    "mysql",
		"sqlite":   "sqlite",
	} {
		d, err := ForDriver(driver)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := ForDriver("oracle")
	assert.Error(t, err)
}

func TestSeedStatements_ConflictSkip(t *testing.T) {
	// Every dialect must skip the insert on conflict rather than fail it
	assert.Contains(t, Postgres{}.InsertSeed(), "ON CONFLICT (username) DO NOTHING")
	assert.Contains(t, SQLite{}.InsertSeed(), "ON CONFLICT (username) DO NOTHING")
	assert.Contains(t, MySQL{}.InsertSeed(), "INSERT IGNORE")
}

func TestCreateStatements(t *testing.T) {
	for _, d := range []Dialect{Postgres{}, MySQL{}, SQLite{}} {
		assert.Contains(t, d.CreateUsersTable(), "CREATE TABLE IF NOT EXISTS users", d.Name())
		assert.Contains(t, d.CreateUsersTable(), "VARCHAR(50) UNIQUE NOT NULL", d.Name())
		assert.Contains(t, d.CreateUsersTable(), "VARCHAR(100) UNIQUE NOT NULL", d.Name())
		assert.Contains(t, d.CreateEmailIndex(), "idx_users_email", d.Name())
	}

	// mysql refreshes updated_at declaratively; index creation has no IF NOT EXISTS there
	assert.Contains(t, MySQL{}.CreateUsersTable(), "ON UPDATE CURRENT_TIMESTAMP")
	assert.NotContains(t, MySQL{}.CreateEmailIndex(), "IF NOT EXISTS")
}

func TestMySQLRebind(t *testing.T) {
	d := MySQL{}

	assert.Equal(t, "SELECT * FROM users WHERE id = ?", d.Rebind("SELECT * FROM users WHERE id = $1"))
	assert.Equal(t, "VALUES (?, ?)", d.Rebind("VALUES ($1, $2)"))
	assert.Equal(t, "WHERE a = ? AND b = ?", d.Rebind("WHERE a = $9 AND b = $12"))
	assert.Equal(t, "SELECT COUNT(*) FROM users", d.Rebind("SELECT COUNT(*) FROM users"))
	// a bare dollar sign is not a placeholder
	assert.Equal(t, "WHERE note = '$'", d.Rebind("WHERE note = '$'"))
}

func TestPostgresIsAlreadyExists(t *testing.T) {
	d := Postgres{}

	for _, code := range []string{"42P07", "42710", "23505"} {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
		assert.True(t, d.IsAlreadyExists(err), code)
	}

	assert.False(t, d.IsAlreadyExists(&pgconn.PgError{Code: "42601"}))
	assert.False(t, d.IsAlreadyExists(errors.New("connection refused")))
	assert.False(t, d.IsAlreadyExists(nil))
}

func TestMySQLIsAlreadyExists(t *testing.T) {
	d := MySQL{}

	for _, number := range []uint16{1050, 1061, 1062} {
		err := fmt.Errorf("exec: %w", &mysql.MySQLError{Number: number})
		assert.True(t, d.IsAlreadyExists(err), number)
	}

	assert.False(t, d.IsAlreadyExists(&mysql.MySQLError{Number: 1045}))
	assert.False(t, d.IsAlreadyExists(errors.New("connection refused")))
	assert.False(t, d.IsAlreadyExists(nil))
}
