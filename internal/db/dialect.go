package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect names a supported store and carries the SQL fragments that differ between them.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// MonthOf extracts the calendar month (1-12) of a date column as an integer expression.
func (d Dialect) MonthOf(col string) string {
	switch d {
	case MySQL:
		return "MONTH(" + col + ")"
	case Postgres:
		return "EXTRACT(MONTH FROM " + col + ")"
	default:
		return "CAST(strftime('%m', " + col + ") AS INTEGER)"
	}
}

// DateOf renders a date column as YYYY-MM-DD text.
func (d Dialect) DateOf(col string) string {
	switch d {
	case MySQL:
		return "DATE_FORMAT(" + col + ", '%Y-%m-%d')"
	case Postgres:
		return "to_char(" + col + ", 'YYYY-MM-DD')"
	default:
		return col
	}
}

// SchemaFile is the embedded bootstrap DDL for the dialect.
func (d Dialect) SchemaFile() string {
	return "schema/" + string(d) + ".sql"
}
