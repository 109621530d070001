package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Truncate empties the pronunciations table.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE pronunciations`); err != nil {
		t.Fatalf("testhelper: truncate pronunciations: %v", err)
	}
}

// CountRows returns the number of stored rows, duplicates included.
func CountRows(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM pronunciations`).Scan(&n); err != nil {
		t.Fatalf("testhelper: count pronunciations: %v", err)
	}
	return n
}
