package app

import (
	"errors"
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const batchYAML = `
date: 2026-10-20
upsert:
  - kind: task
    title: Report
    startTime: "09:00"
    endTime: "10:00"
    priority: high
  - kind: meeting
    name: Budget review
    time: "11:00"
    location: Room 4
    participants: [emp-1, emp-2]
  - kind: reception
    employeeRef: emp-3
    scheduledTime: "09:30"
delete:
  - kind: meeting
    id: m-old
`

func TestSaveDailyPlanRequest_DecodesKindTaggedItems(t *testing.T) {
	var req SaveDailyPlanRequest
	require.NoError(t, yaml.Unmarshal([]byte(batchYAML), &req))

	assert.Equal(t, "2026-10-20", req.Date)
	require.Len(t, req.Upserts, 3)

	task := req.Upserts[0]
	assert.Equal(t, domain.KindTask, task.Kind)
	require.NotNil(t, task.Task)
	assert.Nil(t, task.Meeting)
	assert.Equal(t, "Report", task.Task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Task.Priority)
	assert.Equal(t, "09:00", task.StartTime())

	meeting := req.Upserts[1]
	require.NotNil(t, meeting.Meeting)
	assert.Equal(t, []string{"emp-1", "emp-2"}, meeting.Meeting.Participants)
	assert.Equal(t, "11:00", meeting.StartTime())

	reception := req.Upserts[2]
	require.NotNil(t, reception.Reception)
	assert.Equal(t, "emp-3", reception.ID())
	assert.Equal(t, "09:30", reception.StartTime())

	require.Len(t, req.Deletes, 1)
	assert.Equal(t, PlanItemRef{Kind: domain.KindMeeting, ID: "m-old"}, req.Deletes[0])
}

func TestPlanItemInput_UnknownKind(t *testing.T) {
	var req SaveDailyPlanRequest
	err := yaml.Unmarshal([]byte("upsert:\n  - kind: lunch\n    time: \"12:00\"\n"), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown plan item kind")
}

func TestItemPersistError(t *testing.T) {
	cause := errors.New("disk full")
	err := &ItemPersistError{Kind: domain.KindTask, ID: "t1", Op: "upsert", Err: cause}
	assert.Equal(t, "upsert task t1: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	fetch := &StoreFetchError{Kind: domain.KindMeeting, Err: cause}
	assert.ErrorIs(t, fetch, cause)
	assert.Contains(t, fetch.Error(), "meeting")
}
