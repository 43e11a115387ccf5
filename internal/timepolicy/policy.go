// Package timepolicy decides whether a day's plan may still be changed.
//
// Past days are frozen. On the current day, nothing starting less than
// MinLeadTime from now may be written. Future days are always open.
// Reads are never gated.
package timepolicy

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// MinLeadTime is how far ahead of now the earliest written item must start.
const MinLeadTime = time.Hour

// PastDateError rejects writes to a day before today.
type PastDateError struct {
	Date time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("date %s is in the past", domain.FormatDate(e.Date))
}

// TooSoonError rejects writes on today whose earliest item starts too soon.
type TooSoonError struct {
	Date time.Time
	Time domain.ClockTime
	Lead time.Duration
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("item at %s on %s starts in %s, less than %s from now",
		e.Time, domain.FormatDate(e.Date), e.Lead.Round(time.Minute), MinLeadTime)
}

// Check returns nil when targetDate may be written at now. earliest is the
// earliest start time among the items being written, or nil if none apply.
func Check(now, targetDate time.Time, earliest *domain.ClockTime) error {
	day := domain.DayStart(targetDate)
	today := domain.DayStart(now.In(day.Location()))

	switch {
	case day.Before(today):
		return &PastDateError{Date: day}
	case day.After(today):
		return nil
	}

	if earliest == nil {
		return nil
	}
	lead := earliest.On(day).Sub(now)
	if lead < MinLeadTime {
		return &TooSoonError{Date: day, Time: *earliest, Lead: lead}
	}
	return nil
}

// IsMutable is Check as a predicate.
func IsMutable(now, targetDate time.Time, earliest *domain.ClockTime) bool {
	return Check(now, targetDate, earliest) == nil
}

// EarliestOf parses the given "HH:MM" strings and returns the smallest.
// Empty strings are skipped; nil means nothing was timed.
func EarliestOf(times ...string) (*domain.ClockTime, error) {
	var earliest *domain.ClockTime
	for _, s := range times {
		if s == "" {
			continue
		}
		c, err := domain.ParseClock(s)
		if err != nil {
			return nil, err
		}
		if earliest == nil || c < *earliest {
			earliest = &c
		}
	}
	return earliest, nil
}
