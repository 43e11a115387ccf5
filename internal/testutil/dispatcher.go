package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/dayplan/internal/notify"
)

// Notification is one call captured by RecordingDispatcher.
type Notification struct {
	Event      string
	EmployeeID string
	Reception  notify.ReceptionNotice
	Meeting    notify.MeetingNotice
	Reminder   notify.TaskReminder
}

// RecordingDispatcher captures every notification. When Err is set each
// call is still recorded and then fails with Err.
type RecordingDispatcher struct {
	mu   sync.Mutex
	Sent []Notification
	Err  error
}

func (d *RecordingDispatcher) record(n Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Sent = append(d.Sent, n)
	return d.Err
}

func (d *RecordingDispatcher) NotifyReception(_ context.Context, employeeID string, n notify.ReceptionNotice) error {
	return d.record(Notification{Event: "reception", EmployeeID: employeeID, Reception: n})
}

func (d *RecordingDispatcher) NotifyMeeting(_ context.Context, employeeID string, n notify.MeetingNotice) error {
	return d.record(Notification{Event: "meeting", EmployeeID: employeeID, Meeting: n})
}

func (d *RecordingDispatcher) NotifyTaskReminder(_ context.Context, employeeID string, r notify.TaskReminder) error {
	return d.record(Notification{Event: "task_reminder", EmployeeID: employeeID, Reminder: r})
}

// Events returns the recorded notifications of one kind.
func (d *RecordingDispatcher) Events(event string) []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Notification
	for _, n := range d.Sent {
		if n.Event == event {
			out = append(out, n)
		}
	}
	return out
}
