package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// The seed row. Exactly one copy of it must exist after any number of runs.
const (
	SeedUsername = "testuser"
	SeedEmail    = "test@example.com"
)

// Bootstrapper brings the store from an empty or partially-initialized state
// to "table exists, index exists, seed record exists". Safe to run any number
// of times.
type Bootstrapper struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Bootstrapper {
	return &Bootstrapper{db: db, dialect: dialect}
}

// Run applies the full bootstrap sequence. Any error it returns is fatal for
// startup; "already initialized" conditions never surface here.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.EnsureTable(ctx); err != nil {
		return err
	}
	if err := b.EnsureIndex(ctx); err != nil {
		return err
	}
	return b.EnsureSeedRecord(ctx)
}

// EnsureTable creates the users table if it does not already exist.
func (b *Bootstrapper) EnsureTable(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, b.dialect.CreateUsersTable()); err != nil {
		if b.dialect.IsAlreadyExists(err) {
			logrus.Debug("Users table already exists")
			return nil
		}
		return fmt.Errorf("create users table: %w", err)
	}
	logrus.Info("Users table ensured")
	return nil
}

// EnsureIndex creates the email lookup index if it does not already exist.
func (b *Bootstrapper) EnsureIndex(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, b.dialect.CreateEmailIndex()); err != nil {
		if b.dialect.IsAlreadyExists(err) {
			logrus.Debug("Email index already exists")
			return nil
		}
		return fmt.Errorf("create email index: %w", err)
	}
	logrus.Info("Email index ensured")
	return nil
}

// EnsureSeedRecord inserts the seed user unless a row with its username is
// already there. Every dialect skips the insert on conflict; a duplicate-key
// error from a store that raced us is absorbed the same way.
func (b *Bootstrapper) EnsureSeedRecord(ctx context.Context) error {
	res, err := b.db.ExecContext(ctx, b.dialect.InsertSeed(), SeedUsername, SeedEmail)
	if err != nil {
		if b.dialect.IsAlreadyExists(err) {
			logrus.WithField("username", SeedUsername).Info("Seed record already present")
			return nil
		}
		return fmt.Errorf("insert seed record: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		logrus.WithField("username", SeedUsername).Info("Seed record already present")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"username": SeedUsername,
		"email":    SeedEmail,
	}).Info("Seed record inserted")
	return nil
}

// VerifyResult is the observable outcome of a bootstrap run.
type VerifyResult struct {
	UserCount int
	SeedID    int
}

// Verify checks the bootstrap post-conditions and returns the seed row id,
// which must be stable across repeated runs.
func (b *Bootstrapper) Verify(ctx context.Context) (*VerifyResult, error) {
	result := &VerifyResult{}

	countQuery := b.dialect.Rebind(`SELECT COUNT(*) FROM users`)
	if err := b.db.QueryRowContext(ctx, countQuery).Scan(&result.UserCount); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	seedQuery := b.dialect.Rebind(`SELECT id FROM users WHERE username = $1`)
	err := b.db.QueryRowContext(ctx, seedQuery, SeedUsername).Scan(&result.SeedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("seed record missing after bootstrap")
	}
	if err != nil {
		return nil, fmt.Errorf("look up seed record: %w", err)
	}

	return result, nil
}
