// Package pronunciation publishes the unified dictionary to PostgreSQL.
// Writes go through pgx.Batch; reads are built with squirrel.
package pronunciation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ninolex-gh/internal/adapter/postgres"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

const (
	table = "pronunciations"

	// DefaultBatchSize is used when New is given a non-positive size.
	DefaultBatchSize = 500
)

var entryColumns = []string{
	"grapheme", "phoneme", "domain", "category", "region",
	"city", "alias", "notes", "source_file",
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides pronunciation persistence backed by PostgreSQL.
type Repo struct {
	pool      *pgxpool.Pool
	txm       txManager
	batchSize int
}

// New creates a new pronunciation repository.
func New(pool *pgxpool.Pool, txm txManager, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repo{pool: pool, txm: txm, batchSize: batchSize}
}

// ReplaceAll swaps the published dictionary for entries in one transaction.
// Invalid rows are skipped; duplicates are kept and position records their
// load order. Returns the number of inserted rows.
func (r *Repo) ReplaceAll(ctx context.Context, entries []domain.Entry) (int, error) {
	var inserted int

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		inserted = 0

		q := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := q.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}

		batch := &pgx.Batch{}
		flush := func() error {
			n, err := r.sendBatchExec(ctx, batch)
			inserted += n
			batch = &pgx.Batch{}
			return postgres.MapError(err, "pronunciation batch", fmt.Sprintf("up to #%d", inserted))
		}

		for pos, e := range entries {
			if !e.IsValid() {
				continue
			}
			batch.Queue(
				`INSERT INTO pronunciations
				   (id, grapheme, grapheme_key, phoneme, domain, category, region, city, alias, notes, source_file, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				uuid.New(), e.Grapheme, e.Key(), e.Phoneme, e.Domain, e.Category,
				e.Region, e.City, e.Alias, e.Notes, e.SourceFile, pos,
			)

			if batch.Len() >= r.batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		if batch.Len() > 0 {
			return flush()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("replace pronunciations: %w", err)
	}

	return inserted, nil
}

// GetByKey returns the last published entry whose normalized grapheme
// matches word.
func (r *Repo) GetByKey(ctx context.Context, word string) (domain.Entry, error) {
	query, args, err := builder.
		Select(entryColumns...).
		From(table).
		Where(squirrel.Eq{"grapheme_key": domain.NormalizeKey(word)}).
		OrderBy("position DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Entry{}, fmt.Errorf("build query: %w", err)
	}

	var e domain.Entry
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err = q.QueryRow(ctx, query, args...).Scan(
		&e.Grapheme, &e.Phoneme, &e.Domain, &e.Category, &e.Region,
		&e.City, &e.Alias, &e.Notes, &e.SourceFile,
	)
	if err != nil {
		return domain.Entry{}, postgres.MapError(err, "pronunciation", word)
	}

	return e, nil
}

// Count returns the number of distinct lookup keys.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := builder.
		Select("COUNT(DISTINCT grapheme_key)").
		From(table).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pronunciations: %w", err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
