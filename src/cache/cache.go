// Package cache implements a sqlite backed store for the results of cover
// lookups. It saves repeated requests to external services for destinations
// which were already looked up.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	migrate "github.com/ironsmile/sql-migrate"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// sqlMigrateDirectory is the directory whithin the `sqlFiles` which contains
// the .sql files for sql-migrate.
const sqlMigrateDirectory = "migrations"

// DefaultTTL is how long lookup results are considered fresh.
const DefaultTTL = 7 * 24 * time.Hour

// LookupCache stores lookup results in a sqlite database. It implements
// cover.LookupCache and is safe for concurrent use.
type LookupCache struct {
	db     *sql.DB
	ttl    time.Duration
	logger zerolog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// Open opens or creates the sqlite database at `databasePath` and brings its
// schema up to date with the migrations found in `sqlFiles`. Entries older
// than `ttl` are treated as missing.
func Open(
	ctx context.Context,
	databasePath string,
	sqlFiles fs.FS,
	ttl time.Duration,
	logger zerolog.Logger,
) (*LookupCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := sql.Open("sqlite3", databasePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}

	lc := &LookupCache{
		db:     db,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}

	if err := lc.applyMigrations(sqlFiles); err != nil {
		db.Close()
		return nil, err
	}

	return lc, nil
}

// applyMigrations reads the database migrations dir and applies them to the
// currently open database if it is necessary.
func (lc *LookupCache) applyMigrations(sqlFiles fs.FS) error {
	migrationFiles, err := fs.Sub(sqlFiles, sqlMigrateDirectory)
	if err != nil {
		return fmt.Errorf("locating migrate dir within sqlFiles fs.FS failed: %w", err)
	}

	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(migrationFiles),
	}

	n, err := migrate.ExecMax(lc.db, "sqlite3", migrations, migrate.Up, 0)
	if err == nil {
		if n > 0 {
			lc.logger.Info().Int("applied", n).Msg("applied database migrations")
		}
		return nil
	}

	var planErr *migrate.PlanError
	if errors.As(err, &planErr) {
		lc.logger.Warn().Err(err).Msg("applying database migrations")
		return nil
	}

	return fmt.Errorf("executing db migration failed: %w", err)
}

// Get returns the cached thumbnail for a destination. An empty thumbnail with
// found set to true means the lookup is known to have no image.
func (lc *LookupCache) Get(
	ctx context.Context,
	lookup,
	destination string,
) (string, bool, error) {
	const query = `
		SELECT thumbnail
		FROM wiki_lookups
		WHERE lookup = ? AND destination = ? AND fetched_at >= ?
	`

	var thumbnail string
	err := lc.db.QueryRowContext(
		ctx,
		query,
		lookup,
		normalize(destination),
		lc.expiredBefore(),
	).Scan(&thumbnail)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("querying lookup cache: %w", err)
	}

	return thumbnail, true, nil
}

// Put stores the result of a lookup. An empty thumbnail stores "no image".
func (lc *LookupCache) Put(
	ctx context.Context,
	lookup,
	destination,
	thumbnail string,
) error {
	const query = `
		INSERT INTO wiki_lookups (lookup, destination, thumbnail, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (lookup, destination) DO UPDATE SET
			thumbnail = excluded.thumbnail,
			fetched_at = excluded.fetched_at
	`

	_, err := lc.db.ExecContext(
		ctx,
		query,
		lookup,
		normalize(destination),
		thumbnail,
		lc.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing into lookup cache: %w", err)
	}

	return nil
}

// Purge removes all expired entries and returns how many were removed.
func (lc *LookupCache) Purge(ctx context.Context) (int64, error) {
	res, err := lc.db.ExecContext(
		ctx,
		`DELETE FROM wiki_lookups WHERE fetched_at < ?`,
		lc.expiredBefore(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging lookup cache: %w", err)
	}

	return res.RowsAffected()
}

// Close closes the database.
func (lc *LookupCache) Close() error {
	return lc.db.Close()
}

func (lc *LookupCache) expiredBefore() int64 {
	return lc.now().Add(-lc.ttl).Unix()
}

// normalize makes destinations which name the same Wikipedia page share a
// cache entry. Page titles are case sensitive except for their first letter.
func normalize(destination string) string {
	destination = strings.TrimSpace(destination)

	first, size := utf8.DecodeRuneInString(destination)
	if first == utf8.RuneError {
		return destination
	}

	return string(unicode.ToUpper(first)) + destination[size:]
}
