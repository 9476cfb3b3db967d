package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kopilka/internal/core"

	_ "modernc.org/sqlite"
)

// timeLayout is how created_at is stored. Fixed-width RFC 3339 in UTC keeps
// lexical order equal to chronological order, so range filters work as
// plain string comparisons.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ResolveUser returns the user for externalID, creating one on first
// contact. The upsert relies on the UNIQUE constraint on external_id, so
// concurrent calls for the same id never produce two rows.
func (r *SQLiteRepository) ResolveUser(ctx context.Context, externalID string) (core.User, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (external_id, created_at) VALUES (?, ?)
		 ON CONFLICT (external_id) DO NOTHING`,
		externalID, now.Format(timeLayout))
	if err != nil {
		return core.User{}, fmt.Errorf("upsert user: %w", err)
	}

	var (
		user      core.User
		createdAt string
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT id, external_id, created_at FROM users WHERE external_id = ?`,
		externalID).Scan(&user.ID, &user.ExternalID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("select user: %w", err)
	}

	user.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return core.User{}, fmt.Errorf("parse user created_at: %w", err)
	}

	return user, nil
}

// CreateEntry records a new entry for the user and assigns id and
// created_at.
func (r *SQLiteRepository) CreateEntry(ctx context.Context, userID int64, value float64, currency core.Currency, tags []string, comment string) (core.Entry, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return core.Entry{}, fmt.Errorf("encode tags: %w", err)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, value, currency, tags, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, value, currency.String(), string(encoded), comment, now.Format(timeLayout))
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry id: %w", err)
	}

	entry := core.Entry{
		ID:        id,
		UserID:    userID,
		Value:     value,
		Currency:  currency,
		Tags:      tags,
		Comment:   comment,
		CreatedAt: now,
	}

	slog.InfoContext(ctx, "Entry saved",
		"id", entry.ID,
		"user_id", userID,
		"value", value,
		"currency", currency.String(),
		"tags", len(tags))

	return entry, nil
}

// MostRecentEntry returns the latest entry for the user. Insertion order
// breaks created_at ties. Returns core.ErrNoEntries when the ledger is
// empty.
func (r *SQLiteRepository) MostRecentEntry(ctx context.Context, userID int64) (core.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, value, currency, tags, comment, created_at
		 FROM entries WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, core.ErrNoEntries
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("select most recent entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry permanently removes an entry. Deleting an id that is already
// gone fails with core.ErrEntryNotFound so racing reverts surface cleanly.
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrEntryNotFound
	}

	slog.InfoContext(ctx, "Entry deleted", "id", entryID)
	return nil
}

// QueryEntries returns the user's entries whose created_at lies within
// [from, to], both bounds inclusive. When tags is non-empty only entries
// carrying every filter tag are returned. Order is unspecified here; the
// report aggregator sorts.
func (r *SQLiteRepository) QueryEntries(ctx context.Context, userID int64, from, to time.Time, tags []string) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, value, currency, tags, comment, created_at
		 FROM entries
		 WHERE user_id = ? AND created_at >= ? AND created_at <= ?`,
		userID, from.UTC().Format(timeLayout), to.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if !entry.HasAllTags(tags) {
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.Entry, error) {
	var (
		entry     core.Entry
		currency  string
		encoded   string
		createdAt string
	)
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Value, &currency, &encoded, &entry.Comment, &createdAt)
	if err != nil {
		return core.Entry{}, err
	}

	entry.Currency = core.Currency(currency)

	if err := json.Unmarshal([]byte(encoded), &entry.Tags); err != nil {
		return core.Entry{}, fmt.Errorf("decode tags: %w", err)
	}
	if len(entry.Tags) == 0 {
		entry.Tags = nil
	}

	entry.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("parse entry created_at: %w", err)
	}

	return entry, nil
}
