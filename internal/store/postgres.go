package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Tx and the
// pgxmock pool. Begin is needed so SetMany can run in one transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres keeps every entry as one row of the kv_entries table created by
// the migrations package. Values are stored verbatim.
type Postgres struct {
	db db
}

// NewPostgres constructs a Postgres store backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewPostgres(db db) *Postgres {
	return &Postgres{db: db}
}

const upsertEntry = `
	INSERT INTO kv_entries (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := p.db.QueryRow(ctx, q, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store.Postgres.Get: %w", err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	if _, err := p.db.Exec(ctx, upsertEntry, key, value); err != nil {
		return fmt.Errorf("store.Postgres.Set: %w", translatePgError(err))
	}
	return nil
}

// SetMany upserts every entry inside one transaction; any failure rolls back all of them.
func (p *Postgres) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store.Postgres.SetMany: begin: %w", err)
	}
	for _, k := range sortedKeys(entries) {
		if _, err := tx.Exec(ctx, upsertEntry, k, entries[k]); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("store.Postgres.SetMany: %w", translatePgError(err))
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store.Postgres.SetMany: commit: %w", translatePgError(err))
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const q = `DELETE FROM kv_entries WHERE key = ANY($1)`
	if _, err := p.db.Exec(ctx, q, keys); err != nil {
		return fmt.Errorf("store.Postgres.Delete: %w", err)
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT key FROM kv_entries WHERE key LIKE $1 ORDER BY key`

	rows, err := p.db.Query(ctx, q, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("store.Postgres.Keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("store.Postgres.Keys: scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store.Postgres.Keys: rows: %w", err)
	}
	return keys, nil
}

// escapeLike escapes the LIKE metacharacters of s (backslash is the default escape).
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// translatePgError maps "disk full" and "program limit exceeded" class errors
// onto ErrQuotaExceeded so callers can degrade the same way on every backend.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "53") || strings.HasPrefix(pgErr.Code, "54")) {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, pgErr.Message)
	}
	return err
}
