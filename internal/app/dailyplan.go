package app

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"gopkg.in/yaml.v3"
)

type PlanSummary struct {
	TotalItems      int
	TotalTasks      int
	TotalMeetings   int
	TotalReceptions int
}

// DailyPlan is the merged, time-ordered view of one day. It is rebuilt on
// every read.
type DailyPlan struct {
	Date    time.Time
	Items   []domain.PlanItem
	Summary PlanSummary
}

type TaskInput struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	StartTime   string              `yaml:"startTime"`
	EndTime     string              `yaml:"endTime"`
	Priority    domain.TaskPriority `yaml:"priority"`
	Status      domain.TaskStatus   `yaml:"status"`
}

type MeetingInput struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Time         string   `yaml:"time"`
	Location     string   `yaml:"location"`
	Participants []string `yaml:"participants"`
}

type ReceptionInput struct {
	EmployeeID    string                 `yaml:"employeeRef"`
	Name          string                 `yaml:"name"`
	Position      string                 `yaml:"position"`
	Department    string                 `yaml:"department"`
	Phone         string                 `yaml:"phone"`
	ScheduledTime string                 `yaml:"scheduledTime"`
	Status        domain.ReceptionStatus `yaml:"status"`
}

// PlanItemInput is one kind-tagged item to create or update. Exactly the
// field matching Kind is set.
type PlanItemInput struct {
	Kind      domain.PlanItemKind
	Task      *TaskInput
	Meeting   *MeetingInput
	Reception *ReceptionInput
}

func NewTaskInput(t TaskInput) PlanItemInput {
	return PlanItemInput{Kind: domain.KindTask, Task: &t}
}

func NewMeetingInput(m MeetingInput) PlanItemInput {
	return PlanItemInput{Kind: domain.KindMeeting, Meeting: &m}
}

func NewReceptionInput(r ReceptionInput) PlanItemInput {
	return PlanItemInput{Kind: domain.KindReception, Reception: &r}
}

// ID returns the caller-supplied identifier, if any. Reception items are
// identified by the employee they are for.
func (in PlanItemInput) ID() string {
	switch {
	case in.Task != nil:
		return in.Task.ID
	case in.Meeting != nil:
		return in.Meeting.ID
	case in.Reception != nil:
		return in.Reception.EmployeeID
	}
	return ""
}

// StartTime is the "HH:MM" slot the item occupies on the timeline.
func (in PlanItemInput) StartTime() string {
	switch {
	case in.Task != nil:
		return in.Task.StartTime
	case in.Meeting != nil:
		return in.Meeting.Time
	case in.Reception != nil:
		return in.Reception.ScheduledTime
	}
	return ""
}

// UnmarshalYAML decodes a flat mapping whose "kind" key selects the payload.
func (in *PlanItemInput) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Kind domain.PlanItemKind `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	out := PlanItemInput{Kind: head.Kind}
	var err error
	switch head.Kind {
	case domain.KindTask:
		out.Task = &TaskInput{}
		err = node.Decode(out.Task)
	case domain.KindMeeting:
		out.Meeting = &MeetingInput{}
		err = node.Decode(out.Meeting)
	case domain.KindReception:
		out.Reception = &ReceptionInput{}
		err = node.Decode(out.Reception)
	default:
		return fmt.Errorf("line %d: unknown plan item kind %q", node.Line, head.Kind)
	}
	if err != nil {
		return err
	}
	*in = out
	return nil
}

// PlanItemRef names a stored item to delete.
type PlanItemRef struct {
	Kind domain.PlanItemKind `yaml:"kind"`
	ID   string              `yaml:"id"`
}

// SaveDailyPlanRequest is one batch of changes to a day. Date is the raw
// YYYY-MM-DD input and is validated before any I/O.
type SaveDailyPlanRequest struct {
	Date    string          `yaml:"date"`
	Upserts []PlanItemInput `yaml:"upsert"`
	Deletes []PlanItemRef   `yaml:"delete"`
}

// SaveResult reports what a batch changed. A result with a non-empty Errors
// slice is still a completed call; callers must surface those failures.
type SaveResult struct {
	Date            time.Time
	TasksSaved      int
	MeetingsSaved   int
	ReceptionsSaved int
	Deleted         int
	Errors          []ItemPersistError
}

// HasErrors reports whether any item in the batch failed.
func (r *SaveResult) HasErrors() bool {
	return len(r.Errors) > 0
}
