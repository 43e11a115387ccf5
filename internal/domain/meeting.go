package domain

import (
	"fmt"
	"strings"
	"time"
)

// Meeting is owned independently of any day; it joins a day's plan through Date.
type Meeting struct {
	ID           string
	Name         string
	Description  string
	Date         time.Time
	Time         string
	Location     string
	Participants []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *Meeting) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("meeting name is required")
	}
	if _, err := ParseClock(m.Time); err != nil {
		return fmt.Errorf("meeting time: %w", err)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("meeting date is required")
	}
	return nil
}

// AddParticipant appends an employee ID unless it is already present.
func (m *Meeting) AddParticipant(employeeID string) bool {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return false
	}
	for _, p := range m.Participants {
		if p == employeeID {
			return false
		}
	}
	m.Participants = append(m.Participants, employeeID)
	return true
}

// DroppedParticipants returns the IDs in before that are missing from after.
func DroppedParticipants(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, id := range after {
		keep[id] = struct{}{}
	}
	var dropped []string
	for _, id := range before {
		if _, ok := keep[id]; !ok {
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// SetParticipants replaces the participant list, dropping duplicates while
// keeping first-seen order.
func (m *Meeting) SetParticipants(ids []string) {
	m.Participants = nil
	for _, id := range ids {
		m.AddParticipant(id)
	}
}
