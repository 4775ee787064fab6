package db

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// InitSchema creates the employees and work_entries tables when they do not
// exist yet. The DDL for the pool's dialect is read from schemaFS; every
// statement is idempotent, so running it against an existing store is a no-op.
func InitSchema(ctx context.Context, d *DB, schemaFS fs.FS) error {
	name := d.Dialect().SchemaFile()
	b, err := fs.ReadFile(schemaFS, name)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", name, err)
	}

	for _, stmt := range splitStatements(string(b)) {
		if _, err := d.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema %s: %w", name, err)
		}
	}

	return nil
}

// splitStatements breaks a DDL file on semicolons; the schema files carry no
// semicolons inside literals.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
