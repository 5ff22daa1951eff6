/*
Package sqlite provides the SQLite-backed persistence for generated plans
and holiday calendars.

PURPOSE:
  The plan engine itself is pure and stateless; this package is the
  surrounding system's side of the contract. It persists the plans the
  engine returns and owns the stored holiday table that backs a
  calendar.HolidayCalendar. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  plans:             One row per generated plan (request snapshot + id)
  installment_lines: The plan's lines; paid/overdue flags live here, the
                     engine never sees them
  holidays:          Company holiday dates backing the stored calendar

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/billing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - plan: the engine whose output is stored here
  - jobs: nightly overdue flagging against installment_lines
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/plan"
)

// Store implements plan and holiday persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Generated installment plans (request snapshot)
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		net_amount_units INTEGER NOT NULL,
		installment_count INTEGER NOT NULL,
		first_due_date TEXT NOT NULL,
		cadence TEXT NOT NULL,
		recurrence_months INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Plan lines; amounts in minor units, dates as YYYY-MM-DD
	CREATE TABLE IF NOT EXISTS installment_lines (
		plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		sequence_no INTEGER NOT NULL,
		amount_units INTEGER NOT NULL,
		due_date TEXT NOT NULL,
		paid INTEGER NOT NULL DEFAULT 0,
		overdue INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_id, sequence_no)
	);

	-- Due-date scans (overdue flagging hot path)
	CREATE INDEX IF NOT EXISTS idx_lines_due_date
		ON installment_lines(due_date) WHERE paid = 0;

	-- Company holidays backing the stored calendar
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PLAN RECORDS
// =============================================================================

// PlanRecord is a persisted plan plus the request snapshot that produced it.
type PlanRecord struct {
	ID               string
	NetAmountUnits   int64
	InstallmentCount int
	FirstDueDate     calendar.Date
	Cadence          string
	RecurrenceMonths int
	CreatedAt        time.Time
	Lines            []LineRecord
}

// LineRecord is a persisted installment line with its payment flags.
type LineRecord struct {
	SequenceNo  int
	AmountUnits int64
	DueDate     calendar.Date
	Paid        bool
	Overdue     bool
}

// LinesFromPlan converts engine output into line records.
func LinesFromPlan(lines []plan.InstallmentLine) []LineRecord {
	out := make([]LineRecord, len(lines))
	for i, l := range lines {
		out[i] = LineRecord{
			SequenceNo:  l.SequenceNo,
			AmountUnits: l.Amount.MinorUnits(),
			DueDate:     l.DueDate,
		}
	}
	return out
}

// SavePlan persists a plan and its lines atomically.
func (s *Store) SavePlan(ctx context.Context, rec PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (id, net_amount_units, installment_count, first_due_date, cadence, recurrence_months, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.NetAmountUnits, rec.InstallmentCount, rec.FirstDueDate.String(),
		rec.Cadence, rec.RecurrenceMonths, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	for _, l := range rec.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO installment_lines (plan_id, sequence_no, amount_units, due_date, paid, overdue)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, l.SequenceNo, l.AmountUnits, l.DueDate.String(), boolToInt(l.Paid), boolToInt(l.Overdue))
		if err != nil {
			return fmt.Errorf("failed to insert line %d: %w", l.SequenceNo, err)
		}
	}

	return tx.Commit()
}

// GetPlan returns a plan with its lines, or nil if not found.
func (s *Store) GetPlan(ctx context.Context, id string) (*PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec PlanRecord
	var firstDue, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, net_amount_units, installment_count, first_due_date, cadence, recurrence_months, created_at
		FROM plans WHERE id = ?`, id).
		Scan(&rec.ID, &rec.NetAmountUnits, &rec.InstallmentCount, &firstDue, &rec.Cadence, &rec.RecurrenceMonths, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if rec.FirstDueDate, err = calendar.Parse(firstDue); err != nil {
		return nil, fmt.Errorf("corrupt first_due_date for plan %s: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt created_at for plan %s: %w", id, err)
	}

	rec.Lines, err = s.planLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) planLines(ctx context.Context, planID string) ([]LineRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sequence_no, amount_units, due_date, paid, overdue
		FROM installment_lines WHERE plan_id = ? ORDER BY sequence_no`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var lines []LineRecord
	for rows.Next() {
		var l LineRecord
		var due string
		var paid, overdue int
		if err := rows.Scan(&l.SequenceNo, &l.AmountUnits, &due, &paid, &overdue); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		if l.DueDate, err = calendar.Parse(due); err != nil {
			return nil, fmt.Errorf("corrupt due_date for plan %s line %d: %w", planID, l.SequenceNo, err)
		}
		l.Paid = paid != 0
		l.Overdue = overdue != 0
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListPlans returns all plans without their lines, newest first.
func (s *Store) ListPlans(ctx context.Context) ([]PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, net_amount_units, installment_count, first_due_date, cadence, recurrence_months, created_at
		FROM plans ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		var firstDue, createdAt string
		if err := rows.Scan(&rec.ID, &rec.NetAmountUnits, &rec.InstallmentCount, &firstDue,
			&rec.Cadence, &rec.RecurrenceMonths, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if rec.FirstDueDate, err = calendar.Parse(firstDue); err != nil {
			return nil, fmt.Errorf("corrupt first_due_date for plan %s: %w", rec.ID, err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt created_at for plan %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkLinePaid flags a single installment line as paid.
func (s *Store) MarkLinePaid(ctx context.Context, planID string, sequenceNo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE installment_lines SET paid = 1, overdue = 0
		WHERE plan_id = ? AND sequence_no = ?`, planID, sequenceNo)
	if err != nil {
		return fmt.Errorf("failed to mark line paid: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkOverdue flags every unpaid line due strictly before asOf. Returns the
// number of newly flagged lines.
func (s *Store) MarkOverdue(ctx context.Context, asOf calendar.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE installment_lines SET overdue = 1
		WHERE paid = 0 AND overdue = 0 AND due_date < ?`, asOf.String())
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue lines: %w", err)
	}
	return res.RowsAffected()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayRecord is a stored holiday date.
type HolidayRecord struct {
	ID        string
	Date      calendar.Date
	Name      string
	CreatedAt time.Time
}

// SaveHoliday inserts or replaces a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h HolidayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := h.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO holidays (id, date, name, created_at)
		VALUES (?, ?, ?, ?)`,
		h.ID, h.Date.String(), h.Name, createdAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// ListHolidays returns all stored holidays in date order.
func (s *Store) ListHolidays(ctx context.Context) ([]HolidayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, created_at FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var records []HolidayRecord
	for rows.Next() {
		var h HolidayRecord
		var date, createdAt string
		if err := rows.Scan(&h.ID, &date, &h.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		if h.Date, err = calendar.Parse(date); err != nil {
			return nil, fmt.Errorf("corrupt holiday date %q: %w", date, err)
		}
		if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt holiday created_at: %w", err)
		}
		records = append(records, h)
	}
	return records, rows.Err()
}

// HolidayCalendar builds an immutable calendar from the stored holidays.
// Callers snapshot it per request; refreshing is re-reading.
func (s *Store) HolidayCalendar(ctx context.Context) (*calendar.HolidaySet, error) {
	records, err := s.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]calendar.Date, len(records))
	for i, h := range records {
		dates[i] = h.Date
	}
	return calendar.NewHolidaySet(dates...), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
