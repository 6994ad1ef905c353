package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillmatch/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// MissingColumnsError reports every expected column absent from a table, so
// a stale database is diagnosed in one run instead of column by column.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	qualified := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		qualified[i] = e.Table + "." + c
	}
	return fmt.Sprintf("%s: missing column %s", ErrSchemaMismatch, strings.Join(qualified, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrSchemaMismatch }

// requireColumns checks the public schema before a seeder writes, so a
// database migrated by an older binary fails loudly rather than half-seeding.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("requireColumns: table and columns are required")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool, len(columns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, c := range columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Table: table, Columns: missing}
	}
	return nil
}
