package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"parley/domain"
)

func TestRoomRepository_Create_SequentialIDs(t *testing.T) {
	req := require.New(t)
	repo := NewRoomRepository()

	req.Equal(domain.RoomID(1), repo.Create("general"))
	req.Equal(domain.RoomID(2), repo.Create("random"))
	req.Equal(domain.RoomID(3), repo.Create("general")) // duplicate names are fine
}

func TestRoomRepository_Get(t *testing.T) {
	req := require.New(t)
	repo := NewRoomRepository()
	repo.Create("general")

	t.Run("present", func(t *testing.T) {
		room, ok := repo.Get(1)
		req.True(ok)
		req.Equal("general", room.Name)
	})

	t.Run("absent", func(t *testing.T) {
		for _, id := range []domain.RoomID{0, 99, -1} {
			_, ok := repo.Get(id)
			req.False(ok)
		}
	})
}

func TestRoomRepository_List_CreationOrder(t *testing.T) {
	req := require.New(t)
	repo := NewRoomRepository()
	repo.Create("one")
	repo.Create("two")
	repo.Create("three")

	rooms := repo.List()
	req.Len(rooms, 3)
	req.Equal("one", rooms[0].Name)
	req.Equal("two", rooms[1].Name)
	req.Equal("three", rooms[2].Name)
}
