package timepolicy

import (
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	loc     = time.FixedZone("office", 5*3600)
	lateNow = time.Date(2026, 10, 19, 23, 0, 0, 0, loc)
	today   = time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
)

func clock(s string) *domain.ClockTime {
	c := domain.MustClock(s)
	return &c
}

func TestCheck_PastDate(t *testing.T) {
	for _, earliest := range []*domain.ClockTime{nil, clock("23:59"), clock("00:00")} {
		err := Check(lateNow, today.AddDate(0, 0, -1), earliest)
		var past *PastDateError
		require.ErrorAs(t, err, &past)
		assert.Equal(t, today.AddDate(0, 0, -1), past.Date)
	}
}

func TestCheck_TodayTooSoon(t *testing.T) {
	err := Check(lateNow, today, clock("23:30"))
	var tooSoon *TooSoonError
	require.ErrorAs(t, err, &tooSoon)
	assert.Equal(t, 30*time.Minute, tooSoon.Lead)
	assert.Equal(t, "23:30", tooSoon.Time.String())
}

func TestCheck_TodayAlreadyStarted(t *testing.T) {
	var tooSoon *TooSoonError
	assert.ErrorAs(t, Check(lateNow, today, clock("08:00")), &tooSoon)
}

func TestCheck_BoundaryIsInclusive(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 0, 0, 0, loc)
	assert.NoError(t, Check(now, today, clock("15:00")), "exactly one hour ahead is accepted")

	var tooSoon *TooSoonError
	assert.ErrorAs(t, Check(now.Add(time.Second), today, clock("15:00")), &tooSoon)
}

func TestCheck_TodayWithoutTimes(t *testing.T) {
	assert.NoError(t, Check(lateNow, today, nil))
}

func TestCheck_FutureAlwaysMutable(t *testing.T) {
	tomorrow := today.AddDate(0, 0, 1)
	assert.NoError(t, Check(lateNow, tomorrow, clock("23:59")))
	assert.NoError(t, Check(lateNow, tomorrow, clock("00:00")))
	assert.True(t, IsMutable(lateNow, tomorrow, clock("00:05")))
}

func TestEarliestOf(t *testing.T) {
	got, err := EarliestOf("10:00", "", "09:15", "14:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "09:15", got.String())

	got, err = EarliestOf("", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = EarliestOf("9am")
	assert.Error(t, err)
}
