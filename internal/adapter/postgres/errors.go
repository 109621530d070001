package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// MapError converts pgx errors to domain sentinels, prefixed with the
// entity and key involved. Context errors pass through unchanged.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrAlreadyExists)
		case "23502", "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s %q: %w: %s", entity, key, domain.ErrValidation, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s %q: %w", entity, key, err)
}
