package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// FormatDailyPlan renders the merged timeline for one day.
func FormatDailyPlan(plan *app.DailyPlan, now time.Time) string {
	title := fmt.Sprintf("%s · %s", DayLabel(plan.Date, now), domain.FormatDate(plan.Date))
	if len(plan.Items) == 0 {
		return RenderBox(title, Dim("Nothing planned."))
	}

	rows := make([][]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		rows = append(rows, []string{
			timeRange(it),
			KindBadge(it.Kind),
			Bold(it.Title),
			itemDetail(it),
			TruncID(it.ID),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"TIME", "KIND", "TITLE", "DETAIL", "ID"}, rows))
	b.WriteString("\n")
	b.WriteString(summaryLine(plan.Summary))
	return RenderBox(title, b.String())
}

func timeRange(it domain.PlanItem) string {
	if it.EndTime == "" {
		return it.Time
	}
	return it.Time + "–" + it.EndTime
}

func itemDetail(it domain.PlanItem) string {
	switch p := it.Payload.(type) {
	case domain.TaskPayload:
		return TaskStatusPill(p.Status) + Dim(" · "+string(p.Priority))
	case domain.MeetingPayload:
		parts := []string{}
		if p.Location != "" {
			parts = append(parts, p.Location)
		}
		parts = append(parts, fmt.Sprintf("%d participants", len(p.Participants)))
		return Dim(strings.Join(parts, " · "))
	case domain.ReceptionPayload:
		detail := ReceptionStatusPill(p.Status)
		if p.Task != nil {
			detail += "  " + AssignmentPill(p.TaskStatus, p.EffectiveTaskStatus)
		}
		return detail
	}
	return ""
}

func summaryLine(s app.PlanSummary) string {
	return fmt.Sprintf("%s  %s, %s, %s",
		Bold(fmt.Sprintf("%d items", s.TotalItems)),
		StyleBlue.Render(fmt.Sprintf("%d tasks", s.TotalTasks)),
		StylePurple.Render(fmt.Sprintf("%d meetings", s.TotalMeetings)),
		StyleYellow.Render(fmt.Sprintf("%d receptions", s.TotalReceptions)),
	)
}

// FormatSaveResult reports counts and lists every failed item as a warning.
func FormatSaveResult(r *app.SaveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saved %s: %d tasks, %d meetings, %d receptions, %d deleted\n",
		domain.FormatDate(r.Date), r.TasksSaved, r.MeetingsSaved, r.ReceptionsSaved, r.Deleted)
	if r.HasErrors() {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d items failed:", len(r.Errors))) + "\n")
		for i := range r.Errors {
			b.WriteString(StyleYellow.Render("  WARNING: "+r.Errors[i].Error()) + "\n")
		}
	}
	return b.String()
}

func FormatMeetings(meetings []*domain.Meeting) string {
	if len(meetings) == 0 {
		return Dim("No meetings.") + "\n"
	}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, []string{
			m.Time,
			Bold(m.Name),
			orDash(m.Location),
			fmt.Sprintf("%d", len(m.Participants)),
			TruncID(m.ID),
		})
	}
	return RenderTable([]string{"TIME", "NAME", "LOCATION", "PEOPLE", "ID"}, rows)
}

func FormatEmployees(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return Dim("No employees.") + "\n"
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		chat := Dim("--")
		if e.TelegramChatID != 0 {
			chat = StyleGreen.Render("linked")
		}
		rows = append(rows, []string{
			Bold(e.Name),
			orDash(e.Position),
			orDash(e.Department),
			orDash(e.Phone),
			chat,
			e.ID,
		})
	}
	return RenderTable([]string{"NAME", "POSITION", "DEPARTMENT", "PHONE", "TELEGRAM", "ID"}, rows)
}

// FormatHistory renders an employee's meeting and reception history.
func FormatHistory(e *domain.Employee, meetings []domain.MeetingRef, receptions []domain.ReceptionRef) string {
	var b strings.Builder
	b.WriteString(Header("Meetings") + "\n")
	if len(meetings) == 0 {
		b.WriteString(Dim("none") + "\n")
	}
	for _, m := range meetings {
		fmt.Fprintf(&b, "%s %s  %s\n", domain.FormatDate(m.Date), m.Time, m.Name)
	}
	b.WriteString("\n" + Header("Receptions") + "\n")
	if len(receptions) == 0 {
		b.WriteString(Dim("none") + "\n")
	}
	for _, r := range receptions {
		fmt.Fprintf(&b, "%s %s\n", domain.FormatDate(r.Date), r.Time)
	}
	return RenderBox(e.Name, strings.TrimRight(b.String(), "\n"))
}

// FormatReceptionEntry summarizes one entry after a status change.
func FormatReceptionEntry(e *domain.ReceptionEntry, now time.Time) string {
	line := fmt.Sprintf("%s %s  %s", e.PlanTime(), Bold(e.Name), ReceptionStatusPill(e.Status))
	if e.Task != nil {
		line += "  " + AssignmentPill(e.Task.Status, e.Task.EffectiveStatus(now))
		if e.Task.Status == domain.AssignmentPending {
			line += "  " + DueIn(e.Task.DueAt(), now)
		}
	}
	return line
}
