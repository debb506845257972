// Package activity keeps a small journal of mutating commands next to
// the save file. The journal is advisory: commands record into it best
// effort and never fail because of it.
package activity

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Event is one recorded command.
type Event struct {
	ID     int64
	TS     time.Time
	Action string
	Detail string
}

// Journal appends to and reads from the activity database. The zero
// value is unusable; construct with Open.
type Journal struct {
	path string
}

// Suffix is appended to the save file path to name its journal.
const Suffix = ".activity.sqlite"

// Open returns the journal that belongs to the given save file. No I/O
// happens until the journal is used.
func Open(savePath string) *Journal {
	return &Journal{path: savePath + Suffix}
}

func (j *Journal) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", j.path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when two commands race.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := j.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (j *Journal) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at_unixms INTEGER NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Append records one command invocation.
func (j *Journal) Append(ctx context.Context, action, detail string) error {
	db, err := j.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO activity(at_unixms, action, detail) VALUES(?, ?, ?)`,
		time.Now().UTC().UnixMilli(), action, detail)
	return err
}

// Recent returns the last limit events in chronological order. A limit
// of 0 returns everything.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	db, err := j.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, at_unixms, action, detail FROM activity ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var tsMs int64
		if err := rows.Scan(&e.ID, &tsMs, &e.Action, &e.Detail); err != nil {
			return nil, err
		}
		e.TS = time.UnixMilli(tsMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The query walks newest first; flip back to reading order.
	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	if out == nil {
		out = []Event{}
	}
	return out, nil
}

// Clear drops all recorded events.
func (j *Journal) Clear(ctx context.Context) error {
	db, err := j.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM activity`)
	return err
}
