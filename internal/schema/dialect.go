package schema

import (
	"fmt"
	"strings"
)

// Dialect carries the store-specific SQL for the bootstrap and classifies
// the errors each store raises when an object is already present.
type Dialect interface {
	Name() string

	CreateUsersTable() string
	CreateEmailIndex() string
	InsertSeed() string

	// Rebind rewrites $N placeholders into the store's bind style.
	Rebind(query string) string

	// IsAlreadyExists reports whether err means the table, index or row
	// was already there. Those conditions are absorbed, not surfaced.
	IsAlreadyExists(err error) bool
}

// ForDriver returns the dialect matching a config.DBConfig driver name.
func ForDriver(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres{}, nil
	case "mysql":
		return MySQL{}, nil
	case "sqlite":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("no dialect for driver %q", driver)
	}
}

// rebindQuestion turns $1, $2, ... into ? for stores that only take
// positional placeholders.
func rebindQuestion(query string) string {
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				b.WriteByte('?')
				i = j - 1
				continue
			}
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
