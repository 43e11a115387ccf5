package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		position         TEXT NOT NULL DEFAULT '',
		department       TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		telegram_chat_id INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		date       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_tasks (
		id            TEXT PRIMARY KEY,
		schedule_date TEXT NOT NULL REFERENCES schedules(date) ON DELETE CASCADE,
		order_index   INTEGER NOT NULL DEFAULT 0,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		start_time    TEXT NOT NULL,
		end_time      TEXT NOT NULL,
		priority      TEXT NOT NULL DEFAULT 'normal'
		              CHECK(priority IN ('low','normal','high','urgent')),
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','in-progress','completed','cancelled')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_tasks_date ON schedule_tasks(schedule_date)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings(date)`,

	`CREATE TABLE IF NOT EXISTS meeting_participants (
		meeting_id  TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (meeting_id, employee_id)
	)`,

	`CREATE TABLE IF NOT EXISTS reception_days (
		date       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reception_entries (
		id                 TEXT PRIMARY KEY,
		reception_date     TEXT NOT NULL REFERENCES reception_days(date) ON DELETE CASCADE,
		order_index        INTEGER NOT NULL DEFAULT 0,
		employee_id        TEXT NOT NULL,
		name               TEXT NOT NULL DEFAULT '',
		position           TEXT NOT NULL DEFAULT '',
		department         TEXT NOT NULL DEFAULT '',
		phone              TEXT NOT NULL DEFAULT '',
		time               TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'waiting'
		                   CHECK(status IN ('waiting','present','absent')),
		status_updated_at  TEXT,
		arrived_at         TEXT,
		task_description   TEXT,
		task_deadline_days INTEGER,
		task_deadline      TEXT,
		task_assigned_at   TEXT,
		task_status        TEXT CHECK(task_status IS NULL OR task_status IN ('pending','completed','overdue')),
		task_completed_at  TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		UNIQUE (reception_date, employee_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reception_entries_employee ON reception_entries(employee_id)`,

	// Appointments gained a planned slot separate from the legacy time column.
	`ALTER TABLE reception_entries ADD COLUMN scheduled_time TEXT`,

	`CREATE TABLE IF NOT EXISTS employee_meeting_history (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		meeting_id  TEXT NOT NULL,
		name        TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		time        TEXT NOT NULL DEFAULT '',
		added_at    TEXT NOT NULL,
		PRIMARY KEY (employee_id, meeting_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meeting_history_meeting ON employee_meeting_history(meeting_id)`,

	`CREATE TABLE IF NOT EXISTS employee_reception_history (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		entry_id    TEXT NOT NULL,
		date        TEXT NOT NULL,
		time        TEXT NOT NULL DEFAULT '',
		added_at    TEXT NOT NULL,
		PRIMARY KEY (employee_id, entry_id)
	)`,
}
