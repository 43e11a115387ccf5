package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultReceptionTime is the plan slot for entries stored without any time.
const DefaultReceptionTime = "09:00"

// TaskAssignment is the follow-up task handed to a visitor who showed up.
// Either DeadlineDays (relative to AssignedAt) or an absolute Deadline is used.
type TaskAssignment struct {
	Description  string
	DeadlineDays int
	Deadline     *time.Time
	AssignedAt   time.Time
	Status       AssignmentStatus
	CompletedAt  *time.Time
}

// DueAt returns the instant after which a pending assignment is overdue.
func (a *TaskAssignment) DueAt() time.Time {
	if a.Deadline != nil {
		return *a.Deadline
	}
	return a.AssignedAt.AddDate(0, 0, a.DeadlineDays)
}

// EffectiveStatus is the display status: a pending assignment past its due
// time reads as overdue even though the persisted Status stays pending.
func (a *TaskAssignment) EffectiveStatus(now time.Time) AssignmentStatus {
	if a.Status == AssignmentPending && now.After(a.DueAt()) {
		return AssignmentOverdue
	}
	return a.Status
}

func (a *TaskAssignment) validate() error {
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("task description is required")
	}
	if a.Deadline == nil && a.DeadlineDays <= 0 {
		return fmt.Errorf("task deadline must be at least one day")
	}
	return nil
}

// ReceptionEntry is one visitor appointment on a manager's day.
type ReceptionEntry struct {
	ID              string
	EmployeeID      string
	Name            string
	Position        string
	Department      string
	Phone           string
	ScheduledTime   string
	Time            string // legacy slot for rows written before ScheduledTime existed
	Status          ReceptionStatus
	StatusUpdatedAt *time.Time
	ArrivedAt       *time.Time
	Task            *TaskAssignment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PlanTime is the entry's slot on the daily timeline.
func (e *ReceptionEntry) PlanTime() string {
	return CoalesceStr(e.ScheduledTime, e.Time, DefaultReceptionTime)
}

func (e *ReceptionEntry) touch(now time.Time) {
	t := now
	e.StatusUpdatedAt = &t
	e.UpdatedAt = now
}

// MarkPresent confirms the visitor arrived. The task may be nil; upstream
// callers prompt for one later. Once present, a missing task can still be
// attached by calling MarkPresent again.
func (e *ReceptionEntry) MarkPresent(now time.Time, task *TaskAssignment) error {
	switch e.Status {
	case ReceptionWaiting, "":
	case ReceptionPresent:
		if task == nil || e.Task != nil {
			return nil
		}
	default:
		return transitionError("reception", e.Status, ReceptionPresent)
	}
	if task != nil {
		if err := task.validate(); err != nil {
			return err
		}
	}

	e.Status = ReceptionPresent
	if e.ArrivedAt == nil {
		t := now
		e.ArrivedAt = &t
	}
	if task != nil {
		assigned := *task
		if assigned.AssignedAt.IsZero() {
			assigned.AssignedAt = now
		}
		assigned.Status = AssignmentPending
		assigned.CompletedAt = nil
		e.Task = &assigned
	}
	e.touch(now)
	return nil
}

// MarkAbsent records a no-show. Only a waiting visitor can become absent;
// confirmed attendance is never revoked.
func (e *ReceptionEntry) MarkAbsent(now time.Time) error {
	switch e.Status {
	case ReceptionAbsent:
		return nil
	case ReceptionWaiting, "":
		e.Status = ReceptionAbsent
		e.touch(now)
		return nil
	default:
		return transitionError("reception", e.Status, ReceptionAbsent)
	}
}

// SetStatus dispatches to the transition for the target status.
func (e *ReceptionEntry) SetStatus(to ReceptionStatus, now time.Time, task *TaskAssignment) error {
	switch to {
	case ReceptionPresent:
		return e.MarkPresent(now, task)
	case ReceptionAbsent:
		return e.MarkAbsent(now)
	case ReceptionWaiting:
		if e.Status == ReceptionWaiting || e.Status == "" {
			return nil
		}
		return transitionError("reception", e.Status, to)
	default:
		return fmt.Errorf("unknown reception status %q", to)
	}
}

func (e *ReceptionEntry) pendingTask(to AssignmentStatus) (*TaskAssignment, error) {
	if e.Status != ReceptionPresent {
		return nil, fmt.Errorf("reception task can change only while visitor is present (status %s): %w", e.Status, ErrInvalidTransition)
	}
	if e.Task == nil {
		return nil, fmt.Errorf("reception entry %s has no task", e.ID)
	}
	if e.Task.Status != AssignmentPending {
		return nil, transitionError("reception task", e.Task.Status, to)
	}
	return e.Task, nil
}

// CompleteTask marks the embedded task completed.
func (e *ReceptionEntry) CompleteTask(now time.Time) error {
	task, err := e.pendingTask(AssignmentCompleted)
	if err != nil {
		return err
	}
	task.Status = AssignmentCompleted
	t := now
	task.CompletedAt = &t
	e.UpdatedAt = now
	return nil
}

// MarkTaskOverdue persists the overdue status for the embedded task.
func (e *ReceptionEntry) MarkTaskOverdue(now time.Time) error {
	task, err := e.pendingTask(AssignmentOverdue)
	if err != nil {
		return err
	}
	task.Status = AssignmentOverdue
	e.UpdatedAt = now
	return nil
}

// ReceptionDay holds all reception entries for one calendar day.
type ReceptionDay struct {
	Date    time.Time
	Entries []ReceptionEntry
}

// NewReceptionDay returns an empty reception day.
func NewReceptionDay(date time.Time) *ReceptionDay {
	return &ReceptionDay{Date: DayStart(date)}
}

// FindByEmployee returns the entry for the given employee, or nil.
func (d *ReceptionDay) FindByEmployee(employeeID string) *ReceptionEntry {
	for i := range d.Entries {
		if d.Entries[i].EmployeeID == employeeID {
			return &d.Entries[i]
		}
	}
	return nil
}

// FindByID returns the entry with the given ID, or nil.
func (d *ReceptionDay) FindByID(id string) *ReceptionEntry {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			return &d.Entries[i]
		}
	}
	return nil
}

// Upsert merges in by employee: an existing entry has its contact fields,
// slot and status updated in place; otherwise in is appended as a waiting
// entry. At most one entry per employee exists afterwards. The returned bool
// reports whether an existing entry was updated.
func (d *ReceptionDay) Upsert(in ReceptionEntry, now time.Time) (*ReceptionEntry, bool, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, false, fmt.Errorf("reception employee is required")
	}
	if in.ScheduledTime != "" {
		if _, err := ParseClock(in.ScheduledTime); err != nil {
			return nil, false, fmt.Errorf("reception time: %w", err)
		}
	}

	if existing := d.FindByEmployee(in.EmployeeID); existing != nil {
		merged := *existing
		merged.Name = CoalesceStr(in.Name, merged.Name)
		merged.Position = CoalesceStr(in.Position, merged.Position)
		merged.Department = CoalesceStr(in.Department, merged.Department)
		merged.Phone = CoalesceStr(in.Phone, merged.Phone)
		merged.ScheduledTime = CoalesceStr(in.ScheduledTime, merged.ScheduledTime)
		if in.Status != "" && in.Status != merged.Status {
			if err := merged.SetStatus(in.Status, now, in.Task); err != nil {
				return nil, true, err
			}
		}
		merged.UpdatedAt = now
		*existing = merged
		return existing, true, nil
	}

	entry := in
	entry.Status = ReceptionWaiting
	entry.ArrivedAt = nil
	entry.Task = nil
	entry.CreatedAt = now
	entry.touch(now)
	d.Entries = append(d.Entries, entry)
	return &d.Entries[len(d.Entries)-1], false, nil
}

// Remove drops the entry with the given ID, reporting whether it existed.
func (d *ReceptionDay) Remove(id string) bool {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return true
		}
	}
	return false
}
