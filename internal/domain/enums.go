package domain

type PlanItemKind string

const (
	KindTask      PlanItemKind = "task"
	KindMeeting   PlanItemKind = "meeting"
	KindReception PlanItemKind = "reception"
)

// Valid reports whether k is one of the three plan item kinds.
func (k PlanItemKind) Valid() bool {
	switch k {
	case KindTask, KindMeeting, KindReception:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// ValidTaskPriorities is the canonical set of accepted priority strings.
var ValidTaskPriorities = map[TaskPriority]bool{
	PriorityLow: true, PriorityNormal: true, PriorityHigh: true, PriorityUrgent: true,
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatuses is the canonical set of accepted schedule task statuses.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending: true, TaskInProgress: true, TaskCompleted: true, TaskCancelled: true,
}

type ReceptionStatus string

const (
	ReceptionWaiting ReceptionStatus = "waiting"
	ReceptionPresent ReceptionStatus = "present"
	ReceptionAbsent  ReceptionStatus = "absent"
)

// ValidReceptionStatuses is the canonical set of accepted attendance statuses.
var ValidReceptionStatuses = map[ReceptionStatus]bool{
	ReceptionWaiting: true, ReceptionPresent: true, ReceptionAbsent: true,
}

// AssignmentStatus is the status of the task handed to a visitor who showed up.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentOverdue   AssignmentStatus = "overdue"
)
