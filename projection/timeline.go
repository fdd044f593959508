// Package projection builds local timelines from polled messages.
// Handles ordering and deduplication on the consumer side.
// Does not fetch or render anything itself.
package projection

import (
	"github.com/samber/lo"

	"parley/domain"
)

// Timeline holds a simple local timeline for one room. Successive
// poll responses may overlap; Consume keeps each message once and
// reports which ones were new.
type Timeline struct {
	Room     domain.RoomID
	Messages []domain.Message

	seen map[int]struct{}
}

func NewTimeline(room domain.RoomID) *Timeline {
	return &Timeline{
		Room: room,
		seen: make(map[int]struct{}),
	}
}

// Consume merges a poll response into the timeline and returns the
// messages not seen before, in id order.
func (t *Timeline) Consume(batch []domain.Message) []domain.Message {
	fresh := lo.Filter(batch, func(m domain.Message, _ int) bool {
		_, ok := t.seen[m.ID]
		return !ok
	})
	for _, m := range fresh {
		t.seen[m.ID] = struct{}{}
	}
	t.Messages = append(t.Messages, fresh...)
	return fresh
}

// LastSeenID is the highest id observed so far, 0 on a fresh timeline.
func (t *Timeline) LastSeenID() int {
	if len(t.Messages) == 0 {
		return 0
	}
	return t.Messages[len(t.Messages)-1].ID
}
