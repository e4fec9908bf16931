package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jubilee/internal/domain"
)

type UpsertEmployeeInput struct {
	Code        string
	DisplayName string
	SlackUserID string
	HireDate    *time.Time
	BirthDate   *time.Time
	RetiredAt   *time.Time
	HRUpdatedAt time.Time
}

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByCode(ctx context.Context, code string) (domain.Employee, error) {
	const q = `
SELECT code, display_name, COALESCE(slack_user_id, ''), hire_date, birth_date, retired_at,
       hr_updated_at, created_at, updated_at
FROM employees
WHERE code = $1
`

	e, err := scanEmployee(r.db.QueryRowContext(ctx, q, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, ErrNotFound
		}
		return domain.Employee{}, fmt.Errorf("get employee %s: %w", code, err)
	}

	return e, nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]domain.Employee, error) {
	const q = `
SELECT code, display_name, COALESCE(slack_user_id, ''), hire_date, birth_date, retired_at,
       hr_updated_at, created_at, updated_at
FROM employees
WHERE retired_at IS NULL
ORDER BY code
`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

// Upsert writes an HR-synced row. Code is the conflict key and never changes;
// a NULL retired_at from HR leaves any stored retirement date in place.
func (r *EmployeeRepository) Upsert(ctx context.Context, in UpsertEmployeeInput) (domain.Employee, error) {
	const q = `
INSERT INTO employees (code, display_name, slack_user_id, hire_date, birth_date, retired_at, hr_updated_at)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
ON CONFLICT (code)
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    slack_user_id = COALESCE(EXCLUDED.slack_user_id, employees.slack_user_id),
    hire_date = EXCLUDED.hire_date,
    birth_date = EXCLUDED.birth_date,
    retired_at = COALESCE(EXCLUDED.retired_at, employees.retired_at),
    hr_updated_at = EXCLUDED.hr_updated_at,
    updated_at = NOW()
RETURNING code, display_name, COALESCE(slack_user_id, ''), hire_date, birth_date, retired_at,
          hr_updated_at, created_at, updated_at
`

	e, err := scanEmployee(r.db.QueryRowContext(
		ctx,
		q,
		in.Code,
		in.DisplayName,
		in.SlackUserID,
		toNullTime(in.HireDate),
		toNullTime(in.BirthDate),
		toNullTime(in.RetiredAt),
		in.HRUpdatedAt,
	))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("upsert employee %s: %w", in.Code, err)
	}

	return e, nil
}

// MaxHRUpdatedAt is the incremental sync cursor.
func (r *EmployeeRepository) MaxHRUpdatedAt(ctx context.Context) (time.Time, error) {
	const q = `SELECT COALESCE(MAX(hr_updated_at), 'epoch'::timestamptz) FROM employees`

	var cursor time.Time
	if err := r.db.QueryRowContext(ctx, q).Scan(&cursor); err != nil {
		return time.Time{}, fmt.Errorf("read hr sync cursor: %w", err)
	}
	return cursor, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(scanner rowScanner) (domain.Employee, error) {
	var (
		e         domain.Employee
		hireDate  sql.NullTime
		birthDate sql.NullTime
		retiredAt sql.NullTime
	)

	if err := scanner.Scan(
		&e.Code,
		&e.DisplayName,
		&e.SlackUserID,
		&hireDate,
		&birthDate,
		&retiredAt,
		&e.HRUpdatedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return domain.Employee{}, err
	}

	e.HireDate = fromNullTime(hireDate)
	e.BirthDate = fromNullTime(birthDate)
	e.RetiredAt = fromNullTime(retiredAt)

	return e, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
