// Package notify delivers plan events to the people they concern.
//
// Delivery is fire-and-forget from the planner's point of view: Sender
// swallows every failure after logging it, so a dead bot never blocks a
// mutation.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// ReceptionNotice tells an employee about their appointment with the manager.
type ReceptionNotice struct {
	Date     time.Time
	Time     string
	IsUpdate bool
}

// MeetingNotice tells a participant about a meeting.
type MeetingNotice struct {
	MeetingID string
	Name      string
	Date      time.Time
	Time      string
	Location  string
	IsUpdate  bool
}

// TaskReminder nudges an employee about a task handed out at reception.
type TaskReminder struct {
	EntryID     string
	Date        time.Time
	Description string
	DueAt       time.Time
	Status      domain.AssignmentStatus
}

// Dispatcher sends one message per call.
type Dispatcher interface {
	NotifyReception(ctx context.Context, employeeID string, n ReceptionNotice) error
	NotifyMeeting(ctx context.Context, employeeID string, n MeetingNotice) error
	NotifyTaskReminder(ctx context.Context, employeeID string, r TaskReminder) error
}

// NotificationError describes a delivery that failed and was dropped.
type NotificationError struct {
	Event      string
	EmployeeID string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify %s to %s: %v", e.Event, e.EmployeeID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// Sender wraps a Dispatcher so that callers never see delivery errors.
type Sender struct {
	next   Dispatcher
	logger *slog.Logger
}

// NewSender returns a Sender over d. A nil d sends nothing; a nil logger
// discards failure logs.
func NewSender(d Dispatcher, logger *slog.Logger) *Sender {
	if d == nil {
		d = NoopDispatcher{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sender{next: d, logger: logger}
}

func (s *Sender) Reception(ctx context.Context, employeeID string, n ReceptionNotice) {
	s.report(ctx, "reception", employeeID, s.next.NotifyReception(ctx, employeeID, n))
}

func (s *Sender) Meeting(ctx context.Context, employeeID string, n MeetingNotice) {
	s.report(ctx, "meeting", employeeID, s.next.NotifyMeeting(ctx, employeeID, n))
}

func (s *Sender) TaskReminder(ctx context.Context, employeeID string, r TaskReminder) {
	s.report(ctx, "task_reminder", employeeID, s.next.NotifyTaskReminder(ctx, employeeID, r))
}

func (s *Sender) report(ctx context.Context, event, employeeID string, err error) {
	if err == nil {
		return
	}
	nerr := &NotificationError{Event: event, EmployeeID: employeeID, Err: err}
	s.logger.WarnContext(ctx, "notification_failed",
		"event", event,
		"employee_id", employeeID,
		"error", nerr.Error(),
	)
}

// NoopDispatcher drops every notification.
type NoopDispatcher struct{}

func (NoopDispatcher) NotifyReception(context.Context, string, ReceptionNotice) error { return nil }
func (NoopDispatcher) NotifyMeeting(context.Context, string, MeetingNotice) error     { return nil }
func (NoopDispatcher) NotifyTaskReminder(context.Context, string, TaskReminder) error { return nil }

// LogDispatcher records notifications in the log instead of delivering them.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d LogDispatcher) NotifyReception(ctx context.Context, employeeID string, n ReceptionNotice) error {
	d.Logger.InfoContext(ctx, "notify_reception", "employee_id", employeeID, "text", ReceptionText(n))
	return nil
}

func (d LogDispatcher) NotifyMeeting(ctx context.Context, employeeID string, n MeetingNotice) error {
	d.Logger.InfoContext(ctx, "notify_meeting", "employee_id", employeeID, "text", MeetingText(n))
	return nil
}

func (d LogDispatcher) NotifyTaskReminder(ctx context.Context, employeeID string, r TaskReminder) error {
	d.Logger.InfoContext(ctx, "notify_task_reminder", "employee_id", employeeID, "text", TaskReminderText(r))
	return nil
}
