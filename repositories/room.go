package repositories

import (
	"sync"

	"parley/domain"
)

type IRoomRepository interface {
	Create(name string) domain.RoomID
	Get(id domain.RoomID) (*domain.Room, bool)
	List() []*domain.Room
}

// RoomRepository is the room directory. Ids are assigned
// sequentially from 1 and never reused; rooms are never deleted.
type RoomRepository struct {
	mu    sync.RWMutex
	rooms []*domain.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) Create(name string) domain.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := domain.RoomID(len(r.rooms) + 1)
	r.rooms = append(r.rooms, domain.NewRoom(id, name))
	return id
}

func (r *RoomRepository) Get(id domain.RoomID) (*domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(r.rooms) {
		return nil, false
	}
	return r.rooms[idx], true
}

// List returns a snapshot of all rooms in creation order. The slice
// is copied under the lock, so a creation in flight is either fully
// visible or not at all.
func (r *RoomRepository) List() []*domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}
