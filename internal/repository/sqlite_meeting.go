package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
	loc *time.Location
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo. Stored dates are read
// back as midnight in loc.
func NewSQLiteMeetingRepo(conn db.DBTX, uow db.UnitOfWork, loc *time.Location) *SQLiteMeetingRepo {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteMeetingRepo{db: conn, uow: uow, loc: loc}
}

const meetingColumns = `id, name, description, date, time, location, created_at, updated_at`

// FindByDateRange returns meetings whose date falls within [start, end],
// compared by calendar day, ordered by time then creation.
func (r *SQLiteMeetingRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Meeting, error) {
	from, to := dayKey(start), dayKey(end)
	rows, err := r.db.QueryContext(ctx, `SELECT `+meetingColumns+`
		FROM meetings WHERE date >= ? AND date <= ? ORDER BY date, time, created_at`, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing meetings by date: %w", err)
	}
	meetings, err := r.scanMeetings(rows)
	if err != nil {
		return nil, err
	}

	participants, err := r.participantsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, m := range meetings {
		m.Participants = participants[m.ID]
	}
	return meetings, nil
}

func (r *SQLiteMeetingRepo) FindByID(ctx context.Context, id string) (*domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying meeting: %w", err)
	}
	meetings, err := r.scanMeetings(rows)
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return nil, fmt.Errorf("meeting %s: %w", id, ErrNotFound)
	}
	m := meetings[0]

	prow, err := r.db.QueryContext(ctx, `SELECT employee_id FROM meeting_participants
		WHERE meeting_id = ? ORDER BY order_index`, id)
	if err != nil {
		return nil, fmt.Errorf("listing meeting participants: %w", err)
	}
	defer prow.Close()
	for prow.Next() {
		var employeeID string
		if err := prow.Scan(&employeeID); err != nil {
			return nil, fmt.Errorf("scanning participant row: %w", err)
		}
		m.Participants = append(m.Participants, employeeID)
	}
	if err := prow.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}
	return m, nil
}

// Save inserts or updates m and replaces its participant list.
func (r *SQLiteMeetingRepo) Save(ctx context.Context, m *domain.Meeting) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO meetings (`+meetingColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				date = excluded.date,
				time = excluded.time,
				location = excluded.location,
				updated_at = excluded.updated_at`,
			m.ID,
			m.Name,
			m.Description,
			dayKey(m.Date),
			normalizeClock(m.Time),
			m.Location,
			timestamp(m.CreatedAt),
			timestamp(m.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("upserting meeting: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = ?`, m.ID); err != nil {
			return fmt.Errorf("clearing meeting participants: %w", err)
		}
		for i, employeeID := range m.Participants {
			_, err := tx.ExecContext(ctx, `INSERT INTO meeting_participants (meeting_id, employee_id, order_index)
				VALUES (?, ?, ?)`, m.ID, employeeID, i)
			if err != nil {
				return fmt.Errorf("inserting meeting participant %s: %w", employeeID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteMeetingRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted meeting: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meeting %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMeetingRepo) participantsInRange(ctx context.Context, from, to string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT p.meeting_id, p.employee_id
		FROM meeting_participants p
		JOIN meetings m ON m.id = p.meeting_id
		WHERE m.date >= ? AND m.date <= ?
		ORDER BY p.meeting_id, p.order_index`, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing participants by date: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var meetingID, employeeID string
		if err := rows.Scan(&meetingID, &employeeID); err != nil {
			return nil, fmt.Errorf("scanning participant row: %w", err)
		}
		out[meetingID] = append(out[meetingID], employeeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}
	return out, nil
}

// scanMeetings scans and closes rows.
func (r *SQLiteMeetingRepo) scanMeetings(rows *sql.Rows) ([]*domain.Meeting, error) {
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		var dateStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &dateStr, &m.Time, &m.Location,
			&createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning meeting row: %w", err)
		}

		var err error
		if m.Date, err = parseDay(dateStr, r.loc); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
			return nil, err
		}
		if m.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
			return nil, err
		}
		meetings = append(meetings, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}
