package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingDispatcher struct{ calls int }

func (f *failingDispatcher) NotifyReception(context.Context, string, ReceptionNotice) error {
	f.calls++
	return errors.New("bot offline")
}

func (f *failingDispatcher) NotifyMeeting(context.Context, string, MeetingNotice) error {
	f.calls++
	return errors.New("bot offline")
}

func (f *failingDispatcher) NotifyTaskReminder(context.Context, string, TaskReminder) error {
	f.calls++
	return errors.New("bot offline")
}

func TestSender_SwallowsAndLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := &failingDispatcher{}
	s := NewSender(d, logger)

	ctx := context.Background()
	s.Reception(ctx, "emp-1", ReceptionNotice{})
	s.Meeting(ctx, "emp-2", MeetingNotice{})
	s.TaskReminder(ctx, "emp-3", TaskReminder{})

	assert.Equal(t, 3, d.calls)
	out := buf.String()
	assert.Contains(t, out, "notification_failed")
	assert.Contains(t, out, "event=reception")
	assert.Contains(t, out, "employee_id=emp-3")
	assert.Contains(t, out, "bot offline")
}

func TestSender_NilDispatcher(t *testing.T) {
	s := NewSender(nil, nil)
	assert.NotPanics(t, func() {
		s.Reception(context.Background(), "emp-1", ReceptionNotice{})
	})
}

func TestNotificationError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &NotificationError{Event: "meeting", EmployeeID: "e", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestTexts(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, ReceptionText(ReceptionNotice{Date: date, Time: "10:00", IsUpdate: true}), "moved")
	assert.Contains(t, MeetingText(MeetingNotice{Name: "Budget", Date: date, Time: "11:00", Location: "Room 4"}), "Room 4")
	due := time.Date(2026, 10, 22, 18, 0, 0, 0, time.UTC)
	assert.Contains(t, TaskReminderText(TaskReminder{Description: "Sign", DueAt: due}), "2026-10-22 18:00")
}
