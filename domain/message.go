// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once created.
package domain

import (
	"fmt"
	"time"
)

// Timestamp is a broken-down civil time, the shape the polling
// endpoint serves to browsers.
type Timestamp struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Formatted renders the timestamp as day/month/year hour:minute:second.
func (ts Timestamp) Formatted() string {
	return fmt.Sprintf("%d/%d/%d %d:%d:%d", ts.Day, ts.Month, ts.Year, ts.Hour, ts.Minute, ts.Second)
}

// Message represents an immutable chat event. ID is the message's
// position in its room, assigned by the room starting at 1.
type Message struct {
	Author Identity  `json:"author"`
	Text   string    `json:"text"`
	ID     int       `json:"id"`
	Time   Timestamp `json:"time"`

	// Lang is the ISO 639-1 code detected on the text. Internal only,
	// the polling payload does not carry it.
	Lang string `json:"-"`
}
