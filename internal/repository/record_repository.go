package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"jubilee/internal/domain"
)

type InsertRecordInput struct {
	EmployeeCode string
	EventDate    time.Time
	EventKind    domain.EventKind
}

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Insert(ctx context.Context, in InsertRecordInput) (domain.ResponseRecord, error) {
	const q = `
INSERT INTO response_records (id, employee_code, event_date, event_kind)
VALUES ($1, $2, $3::date, $4)
ON CONFLICT (employee_code, event_date) DO NOTHING
RETURNING id, employee_code, event_date, event_kind, approval, COALESCE(gift_id, ''),
          announced, created_at, updated_at
`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, uuid.NewString(), in.EmployeeCode, in.EventDate, in.EventKind))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Existing record for the same (employee, date); the dispatcher
			// already seeded it on an earlier run.
			return r.GetByEmployeeAndDate(ctx, in.EmployeeCode, in.EventDate)
		}
		return domain.ResponseRecord{}, fmt.Errorf("insert response record: %w", err)
	}

	return rec, nil
}

func (r *RecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeCode string, eventDate time.Time) (domain.ResponseRecord, error) {
	const q = `
SELECT id, employee_code, event_date, event_kind, approval, COALESCE(gift_id, ''),
       announced, created_at, updated_at
FROM response_records
WHERE employee_code = $1 AND event_date = $2::date
`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, employeeCode, eventDate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ResponseRecord{}, ErrNotFound
		}
		return domain.ResponseRecord{}, fmt.Errorf("get response record: %w", err)
	}

	return rec, nil
}

// SetApproval writes the approve/decline decision. Announced records are
// terminal, so the update is a no-op on them and reported as ErrNotFound.
func (r *RecordRepository) SetApproval(ctx context.Context, employeeCode string, eventDate time.Time, approval domain.ApprovalStatus) error {
	const q = `
UPDATE response_records
SET approval = $3, updated_at = NOW()
WHERE employee_code = $1 AND event_date = $2::date AND announced = FALSE
`

	res, err := r.db.ExecContext(ctx, q, employeeCode, eventDate, approval)
	if err != nil {
		return fmt.Errorf("set approval: %w", err)
	}

	return requireRow(res)
}

// SetGift persists the chosen gift. Only approved, not yet announced records
// accept a gift; anything else is reported as ErrNotFound.
func (r *RecordRepository) SetGift(ctx context.Context, employeeCode string, eventDate time.Time, giftID string) error {
	const q = `
UPDATE response_records
SET gift_id = $3, updated_at = NOW()
WHERE employee_code = $1 AND event_date = $2::date AND approval = 'approved' AND announced = FALSE
`

	res, err := r.db.ExecContext(ctx, q, employeeCode, eventDate, giftID)
	if err != nil {
		return fmt.Errorf("set gift: %w", err)
	}

	return requireRow(res)
}

// ListPendingCelebrations returns the approved, unannounced records for one day.
func (r *RecordRepository) ListPendingCelebrations(ctx context.Context, eventDate time.Time) ([]domain.ResponseRecord, error) {
	const q = `
SELECT id, employee_code, event_date, event_kind, approval, COALESCE(gift_id, ''),
       announced, created_at, updated_at
FROM response_records
WHERE event_date = $1::date AND approval = 'approved' AND announced = FALSE
ORDER BY created_at
`

	rows, err := r.db.QueryContext(ctx, q, eventDate)
	if err != nil {
		return nil, fmt.Errorf("list pending celebrations: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ResponseRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate response records: %w", err)
	}

	return records, nil
}

func (r *RecordRepository) ListByDate(ctx context.Context, eventDate time.Time) ([]domain.ResponseRecord, error) {
	const q = `
SELECT id, employee_code, event_date, event_kind, approval, COALESCE(gift_id, ''),
       announced, created_at, updated_at
FROM response_records
WHERE event_date = $1::date
ORDER BY created_at
`

	rows, err := r.db.QueryContext(ctx, q, eventDate)
	if err != nil {
		return nil, fmt.Errorf("list records by date: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ResponseRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate response records: %w", err)
	}

	return records, nil
}

// MarkAnnounced flips the record to its terminal state. Only the celebration
// sweep calls this, and only for approved records.
func (r *RecordRepository) MarkAnnounced(ctx context.Context, employeeCode string, eventDate time.Time) error {
	const q = `
UPDATE response_records
SET announced = TRUE, updated_at = NOW()
WHERE employee_code = $1 AND event_date = $2::date AND approval = 'approved' AND announced = FALSE
`

	res, err := r.db.ExecContext(ctx, q, employeeCode, eventDate)
	if err != nil {
		return fmt.Errorf("mark announced: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(scanner rowScanner) (domain.ResponseRecord, error) {
	var rec domain.ResponseRecord
	if err := scanner.Scan(
		&rec.ID,
		&rec.EmployeeCode,
		&rec.EventDate,
		&rec.EventKind,
		&rec.Approval,
		&rec.GiftID,
		&rec.Announced,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return domain.ResponseRecord{}, err
	}
	return rec, nil
}
