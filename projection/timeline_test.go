package projection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"parley/domain"
)

func message(id int) domain.Message {
	return domain.Message{
		Author: domain.Identity{Login: "alice", Name: "Alice"},
		Text:   "msg",
		ID:     id,
	}
}

func TestTimeline_Consume_DeduplicatesOverlappingBatches(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1)

	fresh := timeline.Consume([]domain.Message{message(1), message(2)})
	req.Len(fresh, 2)

	// The next poll overlaps with what we already have
	fresh = timeline.Consume([]domain.Message{message(2), message(3)})
	req.Len(fresh, 1)
	req.Equal(3, fresh[0].ID)

	req.Len(timeline.Messages, 3)
	req.Equal(3, timeline.LastSeenID())
}

func TestTimeline_LastSeenID_FreshTimeline(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1)

	req.Equal(0, timeline.LastSeenID())
	req.Empty(timeline.Consume(nil))
	req.Equal(0, timeline.LastSeenID())
}
