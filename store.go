package agendah

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// schemaVersion is the single supported schema version. There is no
// migration machinery beyond refusing a database from the future.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	date        TEXT PRIMARY KEY,
	anchor      TEXT NOT NULL DEFAULT '',
	notes       TEXT NOT NULL DEFAULT '',
	tasks       TEXT NOT NULL DEFAULT '[]',
	tags        TEXT NOT NULL DEFAULT '[]',
	attachments TEXT NOT NULL DEFAULT '[]',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_updated_at ON entries(updated_at);

CREATE TABLE IF NOT EXISTS attachments (
	id         TEXT PRIMARY KEY,
	entry_date TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL DEFAULT '',
	size       INTEGER NOT NULL DEFAULT 0,
	ext        TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	payload    BLOB
);
CREATE INDEX IF NOT EXISTS idx_attachments_entry_date ON attachments(entry_date);
CREATE INDEX IF NOT EXISTS idx_attachments_created_at ON attachments(created_at);

CREATE TABLE IF NOT EXISTS cash (
	id         TEXT PRIMARY KEY,
	entry_date TEXT NOT NULL,
	in_val     TEXT NOT NULL DEFAULT '0',
	out_val    TEXT NOT NULL DEFAULT '0',
	descr      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cash_entry_date ON cash(entry_date);
CREATE INDEX IF NOT EXISTS idx_cash_created_at ON cash(created_at);

CREATE TABLE IF NOT EXISTS meta (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL DEFAULT ''
);
`

// Store is the local, single-actor journal database. It holds the four
// logical stores (entries, attachments, cash, meta) in one SQLite file.
//
// Keyed reads and all writes return errors. List-style reads degrade to an
// empty result on failure and only log the degradation.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the journal database at path and ensures the
// schema. Any failure here is wrapped in ErrStorageUnavailable: there is
// nothing the application can do but report it and exit.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data directory: %v", ErrStorageUnavailable, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrStorageUnavailable, path, err)
	}
	// Single local actor; one connection avoids SQLITE_BUSY entirely.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrStorageUnavailable, err)
	}
	s := &Store{db: db, log: log}
	if err := s.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) checkVersion() error {
	var v string
	err := s.db.QueryRow(`SELECT v FROM meta WHERE k = 'schema_version'`).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(`INSERT INTO meta(k, v) VALUES('schema_version', ?)`,
			fmt.Sprint(schemaVersion))
		if err != nil {
			return fmt.Errorf("%w: write schema version: %v", ErrStorageUnavailable, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("%w: read schema version: %v", ErrStorageUnavailable, err)
	case v != fmt.Sprint(schemaVersion):
		return fmt.Errorf("%w: unsupported schema version %s", ErrStorageUnavailable, v)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// GetMeta reads a process-wide setting. Missing keys return "".
func (s *Store) GetMeta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get meta %q: %w", key, err)
	}
	return v, nil
}

// PutMeta writes a process-wide setting.
func (s *Store) PutMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta(k, v) VALUES(?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		key, value)
	if err != nil {
		return fmt.Errorf("put meta %q: %w", key, err)
	}
	return nil
}

// ───── entries ─────

// GetEntry returns the Entry for a date, or nil when the day has none.
func (s *Store) GetEntry(ctx context.Context, date Date) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, anchor, notes, tasks, tags, attachments, created_at, updated_at
		FROM entries WHERE date = ?`, date.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", date, err)
	}
	return e, nil
}

// PutEntry inserts or replaces the Entry for its date.
func (s *Store) PutEntry(ctx context.Context, e *Entry) error {
	tasks, err := json.Marshal(normalizedSlice(e.Tasks))
	if err != nil {
		return fmt.Errorf("put entry %s: encode tasks: %w", e.Date, err)
	}
	tags, err := json.Marshal(normalizedSlice(e.Tags))
	if err != nil {
		return fmt.Errorf("put entry %s: encode tags: %w", e.Date, err)
	}
	atts, err := json.Marshal(normalizedSlice(e.Attachments))
	if err != nil {
		return fmt.Errorf("put entry %s: encode attachments: %w", e.Date, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries(date, anchor, notes, tasks, tags, attachments, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			anchor = excluded.anchor, notes = excluded.notes,
			tasks = excluded.tasks, tags = excluded.tags,
			attachments = excluded.attachments,
			created_at = excluded.created_at, updated_at = excluded.updated_at`,
		e.Date.String(), e.Anchor, e.Notes, string(tasks), string(tags), string(atts),
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put entry %s: %w", e.Date, err)
	}
	return nil
}

// DeleteEntry removes the Entry for a date. Attachments and cash items of
// that date are intentionally left alone; only ClearDay removes all three.
func (s *Store) DeleteEntry(ctx context.Context, date Date) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE date = ?`, date.String()); err != nil {
		return fmt.Errorf("delete entry %s: %w", date, err)
	}
	return nil
}

// ListEntriesByMonth returns the entries of a calendar month, date ascending.
// A failed scan degrades to an empty list.
func (s *Store) ListEntriesByMonth(ctx context.Context, year int, month time.Month) []Entry {
	return s.ListEntriesInRange(ctx, MonthRange(year, month))
}

// ListEntriesInRange returns the entries whose date falls in [r.From, r.To),
// date ascending. A failed scan degrades to an empty list.
func (s *Store) ListEntriesInRange(ctx context.Context, r Range) []Entry {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, anchor, notes, tasks, tags, attachments, created_at, updated_at
		FROM entries WHERE date >= ? AND date < ? ORDER BY date`,
		r.From.String(), r.To.String())
	if err != nil {
		s.degraded("entries", err)
		return []Entry{}
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			s.degraded("entries", err)
			return []Entry{}
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		s.degraded("entries", err)
		return []Entry{}
	}
	return out
}

// AllEntries scans the whole entries store. Unlike the list queries this is
// an export-path read: failures propagate.
func (s *Store) AllEntries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, anchor, notes, tasks, tags, attachments, created_at, updated_at
		FROM entries ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entries: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	return out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var date, tasks, tags, atts string
	if err := row.Scan(&date, &e.Anchor, &e.Notes, &tasks, &tags, &atts,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	e.Date = d
	if err := json.Unmarshal([]byte(tasks), &e.Tasks); err != nil {
		return nil, fmt.Errorf("malformed tasks for %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return nil, fmt.Errorf("malformed tags for %s: %w", date, err)
	}
	if err := json.Unmarshal([]byte(atts), &e.Attachments); err != nil {
		return nil, fmt.Errorf("malformed attachment list for %s: %w", date, err)
	}
	return &e, nil
}

// normalizedSlice maps a nil slice to an empty one so the JSON columns
// always hold "[]", never "null".
func normalizedSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// ───── attachments ─────

// GetAttachment returns an attachment by ID, or nil when unknown.
func (s *Store) GetAttachment(ctx context.Context, id string) (*Attachment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, entry_date, name, type, size, ext, created_at, payload
		FROM attachments WHERE id = ?`, id)
	a, err := scanAttachment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", id, err)
	}
	return a, nil
}

// PutAttachment inserts or replaces an attachment record.
func (s *Store) PutAttachment(ctx context.Context, a *Attachment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments(id, entry_date, name, type, size, ext, created_at, payload)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date = excluded.entry_date, name = excluded.name,
			type = excluded.type, size = excluded.size, ext = excluded.ext,
			created_at = excluded.created_at, payload = excluded.payload`,
		a.ID, a.EntryDate.String(), a.Name, a.Type, a.Size, a.Ext, a.CreatedAt, a.Payload)
	if err != nil {
		return fmt.Errorf("put attachment %s: %w", a.ID, err)
	}
	return nil
}

// DeleteAttachment removes an attachment record and its payload.
// The back-reference in the owning Entry is the caller's business; see
// RemoveAttachment for the user-facing delete.
func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete attachment %s: %w", id, err)
	}
	return nil
}

// ListAttachmentsByDate returns the attachments of one day in scan order.
// A failed scan degrades to an empty list.
func (s *Store) ListAttachmentsByDate(ctx context.Context, date Date) []Attachment {
	return s.listAttachments(ctx, `
		SELECT id, entry_date, name, type, size, ext, created_at, payload
		FROM attachments WHERE entry_date = ?`, date.String())
}

// ListAttachmentsInRange returns attachments with entry_date in [From, To),
// ordered by (date, createdAt). A failed scan degrades to an empty list.
func (s *Store) ListAttachmentsInRange(ctx context.Context, r Range) []Attachment {
	return s.listAttachments(ctx, `
		SELECT id, entry_date, name, type, size, ext, created_at, payload
		FROM attachments WHERE entry_date >= ? AND entry_date < ?
		ORDER BY entry_date, created_at`, r.From.String(), r.To.String())
}

func (s *Store) listAttachments(ctx context.Context, query string, args ...any) []Attachment {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.degraded("attachments", err)
		return []Attachment{}
	}
	defer rows.Close()

	out := []Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			s.degraded("attachments", err)
			return []Attachment{}
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		s.degraded("attachments", err)
		return []Attachment{}
	}
	return out
}

// AllAttachments scans the whole attachments store. Export path: failures
// propagate.
func (s *Store) AllAttachments(ctx context.Context) ([]Attachment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_date, name, type, size, ext, created_at, payload
		FROM attachments ORDER BY entry_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("scan attachments: %w", err)
	}
	defer rows.Close()

	out := []Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachments: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan attachments: %w", err)
	}
	return out, nil
}

// CountAttachments returns the total number of attachment records.
// Degrades to zero on failure.
func (s *Store) CountAttachments(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attachments`).Scan(&n); err != nil {
		s.degraded("attachments", err)
		return 0
	}
	return n
}

func scanAttachment(row rowScanner) (*Attachment, error) {
	var a Attachment
	var date string
	if err := row.Scan(&a.ID, &date, &a.Name, &a.Type, &a.Size, &a.Ext,
		&a.CreatedAt, &a.Payload); err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	a.EntryDate = d
	return &a, nil
}

// ───── cash ─────

// PutCash inserts or replaces a cash item.
func (s *Store) PutCash(ctx context.Context, c *CashItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cash(id, entry_date, in_val, out_val, descr, created_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date = excluded.entry_date, in_val = excluded.in_val,
			out_val = excluded.out_val, descr = excluded.descr,
			created_at = excluded.created_at`,
		c.ID, c.EntryDate.String(), c.InVal.store(), c.OutVal.store(), c.Desc, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("put cash %s: %w", c.ID, err)
	}
	return nil
}

// DeleteCash removes a cash item.
func (s *Store) DeleteCash(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cash WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete cash %s: %w", id, err)
	}
	return nil
}

// ListCashByDate returns one day's cash items, createdAt ascending.
// A failed scan degrades to an empty list.
func (s *Store) ListCashByDate(ctx context.Context, date Date) []CashItem {
	return s.listCash(ctx, `
		SELECT id, entry_date, in_val, out_val, descr, created_at
		FROM cash WHERE entry_date = ? ORDER BY created_at`, date.String())
}

// ListCashInRange returns cash items with entry_date in [From, To), ordered
// by (date, createdAt). A failed scan degrades to an empty list.
func (s *Store) ListCashInRange(ctx context.Context, r Range) []CashItem {
	return s.listCash(ctx, `
		SELECT id, entry_date, in_val, out_val, descr, created_at
		FROM cash WHERE entry_date >= ? AND entry_date < ?
		ORDER BY entry_date, created_at`, r.From.String(), r.To.String())
}

func (s *Store) listCash(ctx context.Context, query string, args ...any) []CashItem {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.degraded("cash", err)
		return []CashItem{}
	}
	defer rows.Close()

	out := []CashItem{}
	for rows.Next() {
		c, err := scanCash(rows)
		if err != nil {
			s.degraded("cash", err)
			return []CashItem{}
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		s.degraded("cash", err)
		return []CashItem{}
	}
	return out
}

// AllCash scans the whole cash store. Export path: failures propagate.
func (s *Store) AllCash(ctx context.Context) ([]CashItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_date, in_val, out_val, descr, created_at
		FROM cash ORDER BY entry_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("scan cash: %w", err)
	}
	defer rows.Close()

	out := []CashItem{}
	for rows.Next() {
		c, err := scanCash(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan cash: %w", err)
	}
	return out, nil
}

func scanCash(row rowScanner) (*CashItem, error) {
	var c CashItem
	var date, in, out string
	if err := row.Scan(&c.ID, &date, &in, &out, &c.Desc, &c.CreatedAt); err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	c.EntryDate = d
	if c.InVal, err = amountFromStore(in); err != nil {
		return nil, err
	}
	if c.OutVal, err = amountFromStore(out); err != nil {
		return nil, err
	}
	return &c, nil
}

// ───── composite operations ─────

// AddAttachment stores the attachment and links its ID into the owning
// Entry's attachment list, creating a blank Entry when the day has none.
// The Entry's UpdatedAt is refreshed: adding a file is an edit of the day.
func (s *Store) AddAttachment(ctx context.Context, a *Attachment, now time.Time) error {
	if err := s.PutAttachment(ctx, a); err != nil {
		return err
	}
	e, err := s.GetEntry(ctx, a.EntryDate)
	if err != nil {
		return err
	}
	if e == nil {
		e = NewEntry(a.EntryDate, now)
	}
	e.Attachments = append(e.Attachments, a.ID)
	e.UpdatedAt = now.UnixMilli()
	return s.PutEntry(ctx, e)
}

// RemoveAttachment deletes the attachment and drops its back-reference from
// the owning Entry, refreshing the Entry's UpdatedAt.
func (s *Store) RemoveAttachment(ctx context.Context, id string, date Date, now time.Time) error {
	if err := s.DeleteAttachment(ctx, id); err != nil {
		return err
	}
	e, err := s.GetEntry(ctx, date)
	if err != nil || e == nil {
		return err
	}
	kept := e.Attachments[:0]
	for _, ref := range e.Attachments {
		if ref != id {
			kept = append(kept, ref)
		}
	}
	e.Attachments = kept
	e.UpdatedAt = now.UnixMilli()
	return s.PutEntry(ctx, e)
}

// ReconcileAttachments re-reads one day and repairs its Entry's attachment
// list: IDs that no longer resolve to a stored Attachment are dropped and
// the correction is persisted. UpdatedAt is deliberately left untouched:
// reconciliation is a repair on read, not an edit.
//
// It returns the (possibly repaired) Entry and the day's attachments.
func (s *Store) ReconcileAttachments(ctx context.Context, date Date) (*Entry, []Attachment, error) {
	atts := s.ListAttachmentsByDate(ctx, date)
	e, err := s.GetEntry(ctx, date)
	if err != nil || e == nil {
		return e, atts, err
	}

	existing := make(map[string]struct{}, len(atts))
	for _, a := range atts {
		existing[a.ID] = struct{}{}
	}
	kept := []string{}
	for _, id := range e.Attachments {
		if _, ok := existing[id]; ok {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(e.Attachments) {
		return e, atts, nil
	}
	e.Attachments = kept
	if err := s.PutEntry(ctx, e); err != nil {
		return nil, nil, fmt.Errorf("reconcile %s: %w", date, err)
	}
	s.log.Debug().Str("date", date.String()).Int("kept", len(kept)).
		Msg("dropped dangling attachment references")
	return e, atts, nil
}

// ClearDay removes the day's attachments, cash items, and Entry. Records of
// every other date stay untouched. The deletes run sequentially, mirroring
// the user-facing "clear day" action.
func (s *Store) ClearDay(ctx context.Context, date Date) error {
	for _, a := range s.ListAttachmentsByDate(ctx, date) {
		if err := s.DeleteAttachment(ctx, a.ID); err != nil {
			return err
		}
	}
	for _, c := range s.ListCashByDate(ctx, date) {
		if err := s.DeleteCash(ctx, c.ID); err != nil {
			return err
		}
	}
	return s.DeleteEntry(ctx, date)
}

// ClearAll empties the three record stores. Used by the destructive import.
// Meta survives: it carries the schema version.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, table := range []string{"entries", "attachments", "cash"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) degraded(store string, err error) {
	s.log.Warn().Err(err).Str("store", store).
		Msg("list scan failed, degrading to empty result")
}
