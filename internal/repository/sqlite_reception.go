package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLiteReceptionRepo implements ReceptionRepo using a SQLite database.
// The (date, employee) uniqueness constraint backs the one-entry-per-employee rule.
type SQLiteReceptionRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteReceptionRepo creates a new SQLiteReceptionRepo.
func NewSQLiteReceptionRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteReceptionRepo {
	return &SQLiteReceptionRepo{db: conn, uow: uow}
}

const receptionEntryColumns = `id, employee_id, name, position, department, phone, scheduled_time, time,
	status, status_updated_at, arrived_at, task_description, task_deadline_days, task_deadline,
	task_assigned_at, task_status, task_completed_at, created_at, updated_at`

func (r *SQLiteReceptionRepo) FindByDate(ctx context.Context, date time.Time) (*domain.ReceptionDay, error) {
	key := dayKey(date)

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reception_days WHERE date = ?`, key).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reception day %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reception day: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+receptionEntryColumns+`
		FROM reception_entries WHERE reception_date = ? ORDER BY order_index`, key)
	if err != nil {
		return nil, fmt.Errorf("listing reception entries: %w", err)
	}
	defer rows.Close()

	day := domain.NewReceptionDay(date)
	for rows.Next() {
		e, err := scanReceptionEntry(rows)
		if err != nil {
			return nil, err
		}
		day.Entries = append(day.Entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reception entries: %w", err)
	}
	return day, nil
}

// Save replaces the stored reception day for d.Date with d.
func (r *SQLiteReceptionRepo) Save(ctx context.Context, d *domain.ReceptionDay) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		key := dayKey(d.Date)
		now := timestamp(time.Now())
		_, err := tx.ExecContext(ctx, `INSERT INTO reception_days (date, created_at, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET updated_at = excluded.updated_at`, key, now, now)
		if err != nil {
			return fmt.Errorf("upserting reception day: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM reception_entries WHERE reception_date = ?`, key); err != nil {
			return fmt.Errorf("clearing reception entries: %w", err)
		}

		query := `INSERT INTO reception_entries (reception_date, order_index, ` + receptionEntryColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for i := range d.Entries {
			e := &d.Entries[i]
			args := []any{key, i,
				e.ID,
				e.EmployeeID,
				e.Name,
				e.Position,
				e.Department,
				e.Phone,
				nullableClock(e.ScheduledTime),
				e.Time,
				string(e.Status),
				nullableTimeToString(e.StatusUpdatedAt, time.RFC3339),
				nullableTimeToString(e.ArrivedAt, time.RFC3339),
			}
			args = append(args, assignmentArgs(e.Task)...)
			args = append(args, timestamp(e.CreatedAt), timestamp(e.UpdatedAt))

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("inserting reception entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

func nullableClock(s string) any {
	if s == "" {
		return nil
	}
	return normalizeClock(s)
}

func assignmentArgs(a *domain.TaskAssignment) []any {
	if a == nil {
		return []any{nil, nil, nil, nil, nil, nil}
	}
	return []any{
		a.Description,
		a.DeadlineDays,
		nullableTimeToString(a.Deadline, time.RFC3339),
		timestamp(a.AssignedAt),
		string(a.Status),
		nullableTimeToString(a.CompletedAt, time.RFC3339),
	}
}

func scanReceptionEntry(rows *sql.Rows) (*domain.ReceptionEntry, error) {
	var e domain.ReceptionEntry
	var status, createdAtStr, updatedAtStr string
	var scheduled, statusUpdatedAt, arrivedAt sql.NullString
	var taskDescription, taskDeadline, taskAssignedAt, taskStatus, taskCompletedAt sql.NullString
	var taskDeadlineDays sql.NullInt64

	err := rows.Scan(
		&e.ID, &e.EmployeeID, &e.Name, &e.Position, &e.Department, &e.Phone, &scheduled, &e.Time,
		&status, &statusUpdatedAt, &arrivedAt, &taskDescription, &taskDeadlineDays, &taskDeadline,
		&taskAssignedAt, &taskStatus, &taskCompletedAt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning reception entry row: %w", err)
	}

	e.ScheduledTime = scheduled.String
	e.Status = domain.ReceptionStatus(status)
	e.StatusUpdatedAt = parseNullableTime(statusUpdatedAt, time.RFC3339)
	e.ArrivedAt = parseNullableTime(arrivedAt, time.RFC3339)
	if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	if taskStatus.Valid {
		task := &domain.TaskAssignment{
			Description:  taskDescription.String,
			DeadlineDays: int(taskDeadlineDays.Int64),
			Deadline:     parseNullableTime(taskDeadline, time.RFC3339),
			Status:       domain.AssignmentStatus(taskStatus.String),
			CompletedAt:  parseNullableTime(taskCompletedAt, time.RFC3339),
		}
		if assigned := parseNullableTime(taskAssignedAt, time.RFC3339); assigned != nil {
			task.AssignedAt = *assigned
		}
		e.Task = task
	}
	return &e, nil
}
