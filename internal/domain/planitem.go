package domain

import (
	"sort"
	"time"
)

// PlanItem is one entry on the merged daily timeline. Kind-specific fields
// live in Payload, whose concrete type always matches Kind.
type PlanItem struct {
	ID          string
	Kind        PlanItemKind
	Time        string
	EndTime     string
	Title       string
	Description string
	Payload     PlanPayload
}

// PlanPayload is implemented only by TaskPayload, MeetingPayload and
// ReceptionPayload.
type PlanPayload interface {
	planKind() PlanItemKind
}

type TaskPayload struct {
	Priority TaskPriority
	Status   TaskStatus
}

type MeetingPayload struct {
	Location     string
	Participants []string
}

// ReceptionPayload carries both the persisted assignment status and the
// derived one; callers choose which to show.
type ReceptionPayload struct {
	EmployeeID          string
	Position            string
	Department          string
	Phone               string
	Status              ReceptionStatus
	ArrivedAt           *time.Time
	Task                *TaskAssignment
	TaskStatus          AssignmentStatus
	EffectiveTaskStatus AssignmentStatus
}

func (TaskPayload) planKind() PlanItemKind      { return KindTask }
func (MeetingPayload) planKind() PlanItemKind   { return KindMeeting }
func (ReceptionPayload) planKind() PlanItemKind { return KindReception }

func TaskPlanItem(t Task) PlanItem {
	return PlanItem{
		ID:          t.ID,
		Kind:        KindTask,
		Time:        t.StartTime,
		EndTime:     t.EndTime,
		Title:       t.Title,
		Description: t.Description,
		Payload:     TaskPayload{Priority: t.Priority, Status: t.Status},
	}
}

func MeetingPlanItem(m Meeting) PlanItem {
	participants := make([]string, len(m.Participants))
	copy(participants, m.Participants)
	return PlanItem{
		ID:          m.ID,
		Kind:        KindMeeting,
		Time:        m.Time,
		Title:       m.Name,
		Description: m.Description,
		Payload:     MeetingPayload{Location: m.Location, Participants: participants},
	}
}

// ReceptionPlanItem maps an entry onto the timeline, evaluating the derived
// assignment status at now.
func ReceptionPlanItem(e ReceptionEntry, now time.Time) PlanItem {
	payload := ReceptionPayload{
		EmployeeID: e.EmployeeID,
		Position:   e.Position,
		Department: e.Department,
		Phone:      e.Phone,
		Status:     e.Status,
		ArrivedAt:  e.ArrivedAt,
	}
	if e.Task != nil {
		task := *e.Task
		payload.Task = &task
		payload.TaskStatus = task.Status
		payload.EffectiveTaskStatus = task.EffectiveStatus(now)
	}
	return PlanItem{
		ID:          e.ID,
		Kind:        KindReception,
		Time:        e.PlanTime(),
		Title:       e.Name,
		Description: CoalesceStr(e.Position, e.Department),
		Payload:     payload,
	}
}

// SortPlanItems orders items by time ascending, keeping input order for ties.
func SortPlanItems(items []PlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return TimeSortKey(items[i].Time) < TimeSortKey(items[j].Time)
	})
}
