package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// DailyPlanService is the aggregator and mutator over all three stores.
type DailyPlanService interface {
	app.DailyPlanUseCase
}

type ScheduleService interface {
	GetSchedule(ctx context.Context, date time.Time) (*domain.Schedule, error)
	AddTask(ctx context.Context, date time.Time, in app.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, date time.Time, in app.TaskInput) (*domain.Task, error)
	SetTaskStatus(ctx context.Context, date time.Time, id string, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, date time.Time, id string) error
}

type MeetingService interface {
	Create(ctx context.Context, date time.Time, in app.MeetingInput) (*domain.Meeting, error)
	Update(ctx context.Context, date time.Time, in app.MeetingInput) (*domain.Meeting, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Meeting, error)
}

type ReceptionService interface {
	Get(ctx context.Context, date time.Time) (*domain.ReceptionDay, error)
	MarkPresent(ctx context.Context, date time.Time, entryID string, task *domain.TaskAssignment) (*domain.ReceptionEntry, error)
	MarkAbsent(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error)
	CompleteTask(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error)
	MarkTaskOverdue(ctx context.Context, date time.Time, entryID string) (*domain.ReceptionEntry, error)
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	MeetingHistory(ctx context.Context, id string) ([]domain.MeetingRef, error)
	ReceptionHistory(ctx context.Context, id string) ([]domain.ReceptionRef, error)
}

// JobsService holds the periodic jobs an external scheduler invokes.
type JobsService interface {
	SweepOverdue(ctx context.Context, date time.Time) (int, error)
	SendTaskReminders(ctx context.Context, date time.Time, leadDays int) (int, error)
}
