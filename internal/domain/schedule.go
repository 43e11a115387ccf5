package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is a manager's own scheduled block of work within one day.
type Task struct {
	ID          string
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Priority    TaskPriority
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a task must carry before it can be stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	start, err := ParseClock(t.StartTime)
	if err != nil {
		return fmt.Errorf("task start: %w", err)
	}
	end, err := ParseClock(t.EndTime)
	if err != nil {
		return fmt.Errorf("task end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("task start %s must be before end %s", t.StartTime, t.EndTime)
	}
	if t.Priority != "" && !ValidTaskPriorities[t.Priority] {
		return fmt.Errorf("unknown task priority %q", t.Priority)
	}
	if t.Status != "" && !ValidTaskStatuses[t.Status] {
		return fmt.Errorf("unknown task status %q", t.Status)
	}
	return nil
}

// IsTerminal reports whether no further status change is allowed.
func (t *Task) IsTerminal() bool {
	return t.Status == TaskCompleted || t.Status == TaskCancelled
}

// Transition moves the task to the target status. Schedule tasks never become
// overdue on their own; every change is an explicit action.
func (t *Task) Transition(to TaskStatus, now time.Time) error {
	if !ValidTaskStatuses[to] {
		return fmt.Errorf("unknown task status %q", to)
	}
	if t.Status == to {
		return nil
	}
	if t.IsTerminal() {
		return transitionError("task", t.Status, to)
	}
	if to == TaskPending {
		return transitionError("task", t.Status, to)
	}
	t.Status = to
	t.UpdatedAt = now
	return nil
}

// Schedule holds the tasks for one calendar day.
type Schedule struct {
	Date      time.Time
	Tasks     []Task
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSchedule returns an empty schedule for the given day.
func NewSchedule(date time.Time) *Schedule {
	return &Schedule{Date: DayStart(date)}
}

// FindTask returns the task with the given ID, or nil.
func (s *Schedule) FindTask(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// UpsertTask replaces the task with the same ID in place, or appends it.
// It reports whether an existing task was replaced.
func (s *Schedule) UpsertTask(t Task) bool {
	if existing := s.FindTask(t.ID); existing != nil {
		t.CreatedAt = existing.CreatedAt
		*existing = t
		return true
	}
	s.Tasks = append(s.Tasks, t)
	return false
}

// RemoveTask drops the task with the given ID, reporting whether it existed.
func (s *Schedule) RemoveTask(id string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
