package clipboard

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS clips (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	label      TEXT    NOT NULL,
	text       TEXT    NOT NULL,
	created_at INTEGER NOT NULL
);`

// Record is one entry from the clipboard history.
type Record struct {
	Entry
	Time time.Time
}

// History wraps another store and keeps a persistent record of everything written to
// it. Reads go straight to the wrapped store.
//
// A failure to record an entry is logged, not returned: once the wrapped store has the
// entry, the write has succeeded as far as callers are concerned.
type History struct {
	Store
	db    *sql.DB
	limit int
	log   *slog.Logger
}

// OpenHistory opens (creating if needed) the history database at path. At most limit
// entries are kept; limit <= 0 means no limit.
func OpenHistory(path string, store Store, limit int, log *slog.Logger) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening clipboard history")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating clipboard history")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &History{Store: store, db: db, limit: limit, log: log}, nil
}

func (h *History) SetPrimaryClip(e Entry) error {
	if err := h.Store.SetPrimaryClip(e); err != nil {
		return err
	}
	if err := h.record(context.Background(), e, time.Now()); err != nil {
		h.log.Warn("recording clipboard history failed", "error", err)
	}
	return nil
}

func (h *History) record(ctx context.Context, e Entry, at time.Time) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `INSERT INTO clips (label, text, created_at) VALUES (?, ?, ?)`,
		e.Label, e.Text, at.UnixNano()); err != nil {
		return errors.Wrap(err, "inserting clip")
	}
	if h.limit > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM clips WHERE id NOT IN (SELECT id FROM clips ORDER BY id DESC LIMIT ?)`, h.limit); err != nil {
			return errors.Wrap(err, "trimming history")
		}
	}
	return tx.Commit()
}

// Recent returns up to n entries from the history, newest first.
func (h *History) Recent(ctx context.Context, n int) ([]Record, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT label, text, created_at FROM clips ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(err, "reading clipboard history")
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&r.Label, &r.Text, &ts); err != nil {
			return nil, errors.Wrap(err, "reading clipboard history")
		}
		r.Time = time.Unix(0, ts)
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "reading clipboard history")
}

// Close releases the history database. The wrapped store is left alone.
func (h *History) Close() error { return h.db.Close() }
