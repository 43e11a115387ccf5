package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db  db.DBTX
	loc *time.Location
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo. History dates are
// read back as midnight in loc.
func NewSQLiteEmployeeRepo(conn db.DBTX, loc *time.Location) *SQLiteEmployeeRepo {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteEmployeeRepo{db: conn, loc: loc}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, position, department, phone, telegram_chat_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Position,
		e.Department,
		e.Phone,
		e.TelegramChatID,
		timestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, position, department, phone, telegram_chat_id, created_at
		FROM employees WHERE id = ?`, id)

	var e domain.Employee
	var createdAtStr string
	err := row.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.Phone, &e.TelegramChatID, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, position, department, phone, telegram_chat_id, created_at
		FROM employees ORDER BY name, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.Phone, &e.TelegramChatID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

// AppendMeetingHistory records ref for the employee. Re-appending the same
// meeting refreshes its name, date and time.
func (r *SQLiteEmployeeRepo) AppendMeetingHistory(ctx context.Context, employeeID string, ref domain.MeetingRef) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO employee_meeting_history (employee_id, meeting_id, name, date, time, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, meeting_id) DO UPDATE SET
			name = excluded.name, date = excluded.date, time = excluded.time`,
		employeeID, ref.MeetingID, ref.Name, dayKey(ref.Date), ref.Time, timestamp(ref.AddedAt))
	if err != nil {
		return fmt.Errorf("appending meeting history for %s: %w", employeeID, err)
	}
	return nil
}

// RemoveMeetingHistory drops the meeting from every employee's history.
func (r *SQLiteEmployeeRepo) RemoveMeetingHistory(ctx context.Context, meetingID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employee_meeting_history WHERE meeting_id = ?`, meetingID); err != nil {
		return fmt.Errorf("removing meeting history: %w", err)
	}
	return nil
}

// RemoveParticipantHistory drops one employee's line for the meeting.
func (r *SQLiteEmployeeRepo) RemoveParticipantHistory(ctx context.Context, meetingID, employeeID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM employee_meeting_history WHERE meeting_id = ? AND employee_id = ?`,
		meetingID, employeeID)
	if err != nil {
		return fmt.Errorf("removing meeting history for %s: %w", employeeID, err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) ListMeetingHistory(ctx context.Context, employeeID string) ([]domain.MeetingRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT meeting_id, name, date, time, added_at
		FROM employee_meeting_history WHERE employee_id = ? ORDER BY date, time`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing meeting history: %w", err)
	}
	defer rows.Close()

	var refs []domain.MeetingRef
	for rows.Next() {
		var ref domain.MeetingRef
		var dateStr, addedAtStr string
		if err := rows.Scan(&ref.MeetingID, &ref.Name, &dateStr, &ref.Time, &addedAtStr); err != nil {
			return nil, fmt.Errorf("scanning meeting history row: %w", err)
		}
		if ref.Date, err = parseDay(dateStr, r.loc); err != nil {
			return nil, err
		}
		if ref.AddedAt, err = parseTimestamp("added_at", addedAtStr); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meeting history: %w", err)
	}
	return refs, nil
}

func (r *SQLiteEmployeeRepo) AppendReceptionHistory(ctx context.Context, employeeID string, ref domain.ReceptionRef) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO employee_reception_history (employee_id, entry_id, date, time, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, entry_id) DO UPDATE SET date = excluded.date, time = excluded.time`,
		employeeID, ref.EntryID, dayKey(ref.Date), ref.Time, timestamp(ref.AddedAt))
	if err != nil {
		return fmt.Errorf("appending reception history for %s: %w", employeeID, err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) ListReceptionHistory(ctx context.Context, employeeID string) ([]domain.ReceptionRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT entry_id, date, time, added_at
		FROM employee_reception_history WHERE employee_id = ? ORDER BY date, time`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing reception history: %w", err)
	}
	defer rows.Close()

	var refs []domain.ReceptionRef
	for rows.Next() {
		var ref domain.ReceptionRef
		var dateStr, addedAtStr string
		if err := rows.Scan(&ref.EntryID, &dateStr, &ref.Time, &addedAtStr); err != nil {
			return nil, fmt.Errorf("scanning reception history row: %w", err)
		}
		if ref.Date, err = parseDay(dateStr, r.loc); err != nil {
			return nil, err
		}
		if ref.AddedAt, err = parseTimestamp("added_at", addedAtStr); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reception history: %w", err)
	}
	return refs, nil
}
