package domain

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"parley/errors"
)

type RoomID int

// Room owns an append-only message log. Message ids are dense,
// always exactly 1..N in insertion order. The mutex makes Post and
// Since safe under concurrent requests.
type Room struct {
	ID   RoomID
	Name string

	mu       sync.Mutex
	messages []Message
}

func NewRoom(id RoomID, name string) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		messages: nil,
	}
}

// Post appends a new message authored by author and returns it.
// The id is the count before the append plus one, which keeps the
// dense-id invariant.
func (r *Room) Post(author Identity, text, lang string) Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := Message{
		Author: author,
		Text:   text,
		ID:     len(r.messages) + 1,
		Time:   NewTimestamp(time.Now()),
		Lang:   lang,
	}
	r.messages = append(r.messages, m)
	return m
}

// Since returns every message with an id strictly greater than
// lastSeenID, in order. lastSeenID must be positive. Selection is by
// id, not by slice position, so it does not depend on ids staying
// dense.
func (r *Room) Since(lastSeenID int) ([]Message, error) {
	if lastSeenID <= 0 {
		return nil, errors.ErrInvalidLastSeenID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return []Message{}, nil
	}
	return lo.Filter(r.messages, func(m Message, _ int) bool {
		return m.ID > lastSeenID
	}), nil
}

// Snapshot copies the full log, for the inspector and templates.
func (r *Room) Snapshot() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Len reports the current message count.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
