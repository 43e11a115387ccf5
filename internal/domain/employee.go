package domain

import "time"

type Employee struct {
	ID             string
	Name           string
	Position       string
	Department     string
	Phone          string
	TelegramChatID int64
	CreatedAt      time.Time
}

// MeetingRef is one line of an employee's personal meeting history.
type MeetingRef struct {
	MeetingID string
	Name      string
	Date      time.Time
	Time      string
	AddedAt   time.Time
}

// ReceptionRef is one line of an employee's personal reception history.
type ReceptionRef struct {
	EntryID string
	Date    time.Time
	Time    string
	AddedAt time.Time
}
