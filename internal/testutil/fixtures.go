package testutil

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

// Employee options
type EmployeeOption func(*domain.Employee)

func WithChatID(id int64) EmployeeOption {
	return func(e *domain.Employee) {
		e.TelegramChatID = id
	}
}

func WithDepartment(dept string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = dept
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		ID:         uuid.New().String(),
		Name:       name,
		Position:   "Engineer",
		Department: "Platform",
		Phone:      "+10000000000",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Meeting options
type MeetingOption func(*domain.Meeting)

func WithMeetingTime(hhmm string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Time = hhmm
	}
}

func WithParticipants(ids ...string) MeetingOption {
	return func(m *domain.Meeting) {
		m.SetParticipants(ids)
	}
}

func WithLocation(loc string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Location = loc
	}
}

func NewTestMeeting(name string, date time.Time, opts ...MeetingOption) *domain.Meeting {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Meeting{
		ID:        uuid.New().String(),
		Name:      name,
		Date:      domain.DayStart(date),
		Time:      "10:00",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskTimes(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.StartTime = start
		t.EndTime = end
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: "09:00",
		EndTime:   "10:00",
		Priority:  domain.PriorityNormal,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Reception entry options
type EntryOption func(*domain.ReceptionEntry)

func WithScheduledTime(hhmm string) EntryOption {
	return func(e *domain.ReceptionEntry) {
		e.ScheduledTime = hhmm
	}
}

func WithReceptionStatus(s domain.ReceptionStatus) EntryOption {
	return func(e *domain.ReceptionEntry) {
		e.Status = s
	}
}

func WithAssignment(a *domain.TaskAssignment) EntryOption {
	return func(e *domain.ReceptionEntry) {
		e.Task = a
	}
}

// NewTestEntry returns a waiting reception entry for the employee.
func NewTestEntry(emp *domain.Employee, opts ...EntryOption) domain.ReceptionEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := domain.ReceptionEntry{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Position:   emp.Position,
		Department: emp.Department,
		Phone:      emp.Phone,
		Status:     domain.ReceptionWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
