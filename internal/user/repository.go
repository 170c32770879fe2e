package user

import (
	"database/sql"
	"errors"

	"schema_bootstrap/internal/schema"

	"github.com/sirupsen/logrus"
)

// Records are immutable from this system's point of view: the only insert is
// the bootstrap seed, so the repository is read-only.
type UserRepository struct {
	db      *sql.DB
	dialect schema.Dialect
}

type UserRepositoryInterface interface {
	GetByID(id int) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByEmail(email string) (*User, error)
	Count() (int, error)
}

func NewUserRepository(db *sql.DB, dialect schema.Dialect) UserRepositoryInterface {
	return &UserRepository{db: db, dialect: dialect}
}

const selectUser = `
	SELECT id, username, email, created_at, updated_at
	FROM users
`

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int) (*User, error) {
	query := r.dialect.Rebind(selectUser + `WHERE id = $1`)
	return r.scanOne(query, id)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*User, error) {
	query := r.dialect.Rebind(selectUser + `WHERE username = $1`)
	return r.scanOne(query, username)
}

// GetByEmail retrieves a user by email, served by the bootstrap's email index
func (r *UserRepository) GetByEmail(email string) (*User, error) {
	query := r.dialect.Rebind(selectUser + `WHERE email = $1`)
	return r.scanOne(query, email)
}

// Count returns the number of user records
func (r *UserRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		logrus.WithError(err).Error("Failed to count users")
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) scanOne(query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("arg", arg).Warn("User not found")
			return nil, errors.New("user not found")
		}
		logrus.WithError(err).Error("Failed to get user")
		return nil, err
	}

	return user, nil
}
