package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// ScheduleRepo stores the per-day task aggregate.
type ScheduleRepo interface {
	FindByDate(ctx context.Context, date time.Time) (*domain.Schedule, error)
	Save(ctx context.Context, s *domain.Schedule) error
}

// MeetingRepo stores meetings, which are keyed by their own date.
type MeetingRepo interface {
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Meeting, error)
	FindByID(ctx context.Context, id string) (*domain.Meeting, error)
	Save(ctx context.Context, m *domain.Meeting) error
	DeleteByID(ctx context.Context, id string) error
}

// ReceptionRepo stores the per-day reception aggregate.
type ReceptionRepo interface {
	FindByDate(ctx context.Context, date time.Time) (*domain.ReceptionDay, error)
	Save(ctx context.Context, d *domain.ReceptionDay) error
}

// EmployeeRepo is the employee directory plus each employee's personal history.
type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	AppendMeetingHistory(ctx context.Context, employeeID string, ref domain.MeetingRef) error
	RemoveMeetingHistory(ctx context.Context, meetingID string) error
	RemoveParticipantHistory(ctx context.Context, meetingID, employeeID string) error
	ListMeetingHistory(ctx context.Context, employeeID string) ([]domain.MeetingRef, error)
	AppendReceptionHistory(ctx context.Context, employeeID string, ref domain.ReceptionRef) error
	ListReceptionHistory(ctx context.Context, employeeID string) ([]domain.ReceptionRef, error)
}
