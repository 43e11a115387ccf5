package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 6, 15, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), "Today"},
		{"tomorrow", time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), "Yesterday"},
		{"later", time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC), "Friday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.input, now))
		})
	}
}

func TestDueIn(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "due today", stripANSI(DueIn(now.Add(3*time.Hour), now)))
	assert.Equal(t, "due in 3d", stripANSI(DueIn(now.Add(80*time.Hour), now)))
	assert.Equal(t, "1d late", stripANSI(DueIn(now.Add(-time.Hour), now)))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefghijkl")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestStatusPills(t *testing.T) {
	assert.Contains(t, TaskStatusPill(domain.TaskInProgress), "In Progress")
	assert.Contains(t, ReceptionStatusPill(domain.ReceptionAbsent), "Absent")
	assert.Contains(t, KindBadge(domain.KindMeeting), "MEETING")

	pill := stripANSI(AssignmentPill(domain.AssignmentPending, domain.AssignmentOverdue))
	assert.Contains(t, pill, "task overdue")
	assert.Contains(t, pill, "stored pending")
	assert.NotContains(t, stripANSI(AssignmentPill(domain.AssignmentCompleted, domain.AssignmentCompleted)), "stored")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{StyleRed.Render("wide cell"), "x"}, {"y"}},
	))
	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          LONG HEADER", lines[0])
	assert.Equal(t, "wide cell  x", lines[2])
	assert.Equal(t, "y          ", lines[3])
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}
