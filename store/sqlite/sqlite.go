/*
Package sqlite provides a SQLite-backed earnings.WorkspaceStore.

PURPOSE:
  Keeps the calculator workspace (settings, rate rules, selected days) in a
  named in-memory SQLite database. The database lives exactly as long as the
  process; there is no file and nothing survives a restart.

KEY TABLES:
  settings:   One row: base pay and rate mode
  rate_rules: Rules in display order (position)
  work_days:  Selected days in workspace order (position)

  Decimals are stored as TEXT so base pay, multipliers and hours round-trip
  exactly.

CONNECTIONS:
  The DSN is "file:<name>?mode=memory&cache=shared". The pool is limited to
  one connection; an in-memory database disappears when its last connection
  closes.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Save replaces the whole workspace in
  a single transaction.

USAGE:
  store, err := sqlite.New("wagecalc", payrates.DefaultWorkspace())
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - earnings/store.go: Interface definition
  - earnings/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
)

// Store implements earnings.WorkspaceStore using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	initial earnings.Workspace
}

// New opens the named in-memory database. Load returns initial until the
// first Save, and again after Reset.
func New(name string, initial earnings.Workspace) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db, initial: initial.Clone()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection. The data is gone afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		base_pay TEXT NOT NULL,
		mode TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rate_rules (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		multiplier TEXT NOT NULL,
		days_json TEXT NOT NULL,
		ranges_json TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS work_days (
		date TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		start_hour TEXT NOT NULL,
		end_hour TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_work_days_position ON work_days(position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// Load returns the stored workspace, or the initial one if nothing was saved.
func (s *Store) Load(ctx context.Context) (earnings.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var basePay, mode string
	err := s.db.QueryRowContext(ctx, `SELECT base_pay, mode FROM settings WHERE id = 1`).Scan(&basePay, &mode)
	if errors.Is(err, sql.ErrNoRows) {
		return s.initial.Clone(), nil
	}
	if err != nil {
		return earnings.Workspace{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var ws earnings.Workspace
	if ws.BasePay, err = decimal.NewFromString(basePay); err != nil {
		return earnings.Workspace{}, fmt.Errorf("failed to parse base pay %q: %w", basePay, err)
	}
	ws.Mode = earnings.RateMode(mode)

	if ws.Rules, err = s.loadRules(ctx); err != nil {
		return earnings.Workspace{}, err
	}
	if ws.Days, err = s.loadDays(ctx); err != nil {
		return earnings.Workspace{}, err
	}
	return ws, nil
}

func (s *Store) loadRules(ctx context.Context) ([]earnings.RateRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, multiplier, days_json, ranges_json, color
		FROM rate_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	defer rows.Close()

	rules := []earnings.RateRule{}
	for rows.Next() {
		var r earnings.RateRule
		var multiplier, daysJSON, rangesJSON string
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &multiplier, &daysJSON, &rangesJSON, &r.Color); err != nil {
			return nil, err
		}
		if r.Multiplier, err = decimal.NewFromString(multiplier); err != nil {
			return nil, fmt.Errorf("rule %s: bad multiplier %q: %w", r.ID, multiplier, err)
		}
		if err := json.Unmarshal([]byte(daysJSON), &r.Days); err != nil {
			return nil, fmt.Errorf("rule %s: bad days: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(rangesJSON), &r.Ranges); err != nil {
			return nil, fmt.Errorf("rule %s: bad ranges: %w", r.ID, err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) loadDays(ctx context.Context) ([]earnings.WorkInterval, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, start_hour, end_hour FROM work_days ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}
	defer rows.Close()

	var days []earnings.WorkInterval
	for rows.Next() {
		var date, start, end string
		if err := rows.Scan(&date, &start, &end); err != nil {
			return nil, err
		}
		var iv earnings.WorkInterval
		if iv.Date, err = earnings.ParseDate(date); err != nil {
			return nil, err
		}
		if iv.Start, err = decimal.NewFromString(start); err != nil {
			return nil, fmt.Errorf("day %s: bad start %q: %w", date, start, err)
		}
		if iv.End, err = decimal.NewFromString(end); err != nil {
			return nil, fmt.Errorf("day %s: bad end %q: %w", date, end, err)
		}
		days = append(days, iv)
	}
	return days, rows.Err()
}

// =============================================================================
// SAVE / RESET
// =============================================================================

// Save replaces the stored workspace atomically.
func (s *Store) Save(ctx context.Context, w earnings.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (id, base_pay, mode) VALUES (1, ?, ?)`,
		w.BasePay.String(), string(w.Mode)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	for i, r := range w.Rules {
		daysJSON, err := json.Marshal(r.Days)
		if err != nil {
			return err
		}
		rangesJSON, err := json.Marshal(r.Ranges)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rate_rules (position, id, name, description, multiplier, days_json, ranges_json, color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Name, r.Description, r.Multiplier.String(), string(daysJSON), string(rangesJSON), r.Color,
		); err != nil {
			return fmt.Errorf("failed to save rule %s: %w", r.ID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, d := range w.Days {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO work_days (date, position, start_hour, end_hour, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			d.Date.String(), i, d.Start.String(), d.End.String(), now,
		); err != nil {
			return fmt.Errorf("failed to save day %s: %w", d.Date, err)
		}
	}

	return tx.Commit()
}

// Reset deletes everything, so Load returns the initial workspace again.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func clearTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"work_days", "rate_rules", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
