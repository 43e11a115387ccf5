package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
// A schedule and its tasks are always written in one transaction.
type SQLiteScheduleRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn, uow: uow}
}

func (r *SQLiteScheduleRepo) FindByDate(ctx context.Context, date time.Time) (*domain.Schedule, error) {
	key := dayKey(date)

	var createdAtStr, updatedAtStr string
	err := r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM schedules WHERE date = ?`, key).
		Scan(&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	s := domain.NewSchedule(date)
	if s.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, start_time, end_time, priority, status, created_at, updated_at
		FROM schedule_tasks WHERE schedule_date = ? ORDER BY order_index`, key)
	if err != nil {
		return nil, fmt.Errorf("listing schedule tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Task
		var priority, status string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.StartTime, &t.EndTime,
			&priority, &status, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning schedule task row: %w", err)
		}
		t.Priority = domain.TaskPriority(priority)
		t.Status = domain.TaskStatus(status)
		if t.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
			return nil, err
		}
		if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
			return nil, err
		}
		s.Tasks = append(s.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule tasks: %w", err)
	}
	return s, nil
}

// Save replaces the stored schedule for s.Date with s.
func (r *SQLiteScheduleRepo) Save(ctx context.Context, s *domain.Schedule) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		key := dayKey(s.Date)
		_, err := tx.ExecContext(ctx, `INSERT INTO schedules (date, created_at, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET updated_at = excluded.updated_at`,
			key, timestamp(s.CreatedAt), timestamp(s.UpdatedAt))
		if err != nil {
			return fmt.Errorf("upserting schedule: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_tasks WHERE schedule_date = ?`, key); err != nil {
			return fmt.Errorf("clearing schedule tasks: %w", err)
		}

		query := `INSERT INTO schedule_tasks (id, schedule_date, order_index, title, description,
			start_time, end_time, priority, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for i, t := range s.Tasks {
			_, err := tx.ExecContext(ctx, query,
				t.ID,
				key,
				i,
				t.Title,
				t.Description,
				normalizeClock(t.StartTime),
				normalizeClock(t.EndTime),
				string(t.Priority),
				string(t.Status),
				timestamp(t.CreatedAt),
				timestamp(t.UpdatedAt),
			)
			if err != nil {
				return fmt.Errorf("inserting schedule task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}
