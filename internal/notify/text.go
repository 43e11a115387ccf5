package notify

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
)

func ReceptionText(n ReceptionNotice) string {
	if n.IsUpdate {
		return fmt.Sprintf("Your appointment with the manager was moved: %s at %s.",
			domain.FormatDate(n.Date), n.Time)
	}
	return fmt.Sprintf("You have an appointment with the manager on %s at %s.",
		domain.FormatDate(n.Date), n.Time)
}

func MeetingText(n MeetingNotice) string {
	verb := "You are invited to"
	if n.IsUpdate {
		verb = "Updated:"
	}
	text := fmt.Sprintf("%s %q on %s at %s", verb, n.Name, domain.FormatDate(n.Date), n.Time)
	if n.Location != "" {
		text += ", " + n.Location
	}
	return text + "."
}

func TaskReminderText(r TaskReminder) string {
	return fmt.Sprintf("Reminder: %q is due %s.", r.Description, r.DueAt.Format("2006-01-02 15:04"))
}
