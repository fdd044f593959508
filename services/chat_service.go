package services

import (
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"parley/domain"
	"parley/errors"
	"parley/moderation"
	"parley/observability"
	"parley/repositories"
)

type IChatService interface {
	CreateRoom(name string) domain.RoomID
	ListRooms() []*domain.Room
	Room(id domain.RoomID) (*domain.Room, error)
	PostMessage(cmd domain.PostMessageCommand) (domain.Message, error)
	MessagesSince(cmd domain.FetchSinceCommand) ([]domain.Message, error)
}

// ChatService is the application face of the room directory. Posting
// runs the full pipeline: censor, detect language, append, index.
type ChatService struct {
	rooms     repositories.IRoomRepository
	moderator moderation.Moderator
	indexer   IIndexer
	monitor   *observability.Monitor
	log       *slog.Logger
}

// IIndexer receives every stored message for full-text search.
type IIndexer interface {
	Index(roomID domain.RoomID, m domain.Message) error
}

func NewChatService(
	rooms repositories.IRoomRepository,
	moderator moderation.Moderator,
	indexer IIndexer,
	monitor *observability.Monitor,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		rooms:     rooms,
		moderator: moderator,
		indexer:   indexer,
		monitor:   monitor,
		log:       log,
	}
}

func (s *ChatService) CreateRoom(name string) domain.RoomID {
	id := s.rooms.Create(name)
	s.monitor.IncrRoomsCreated()
	s.log.Info("Room created", "id", id, "name", name)
	return id
}

func (s *ChatService) ListRooms() []*domain.Room {
	return s.rooms.List()
}

func (s *ChatService) Room(id domain.RoomID) (*domain.Room, error) {
	room, ok := s.rooms.Get(id)
	if !ok {
		return nil, errors.ErrRoomNotFound
	}
	return room, nil
}

// PostMessage sanitizes and appends a message to its room, then
// feeds the stored message to the search index.
func (s *ChatService) PostMessage(cmd domain.PostMessageCommand) (domain.Message, error) {
	room, ok := s.rooms.Get(cmd.Room())
	if !ok {
		return domain.Message{}, errors.ErrRoomNotFound
	}

	sanitized, foundWords := s.moderator.Censor(cmd.Text)
	if len(foundWords) > 0 {
		s.monitor.IncrCensorHits()
		s.log.Warn("Message censored",
			"room", cmd.Room(),
			"author", cmd.Author.Login,
			"words", len(foundWords))
	}

	info := whatlanggo.Detect(sanitized)
	langCode := info.Lang.Iso6391()

	message := room.Post(cmd.Author, sanitized, langCode)
	s.monitor.IncrMessagesPosted()

	// Indexing is best effort, a failed index never loses the message.
	if err := s.indexer.Index(cmd.Room(), message); err != nil {
		s.log.Error("Indexing failed", "room", cmd.Room(), "id", message.ID, "err", err)
	}

	s.log.Debug("Message posted",
		"room", cmd.Room(),
		"id", message.ID,
		"lang", langCode)
	return message, nil
}

// MessagesSince resolves the room and delegates to its log. It holds
// no state of its own.
func (s *ChatService) MessagesSince(cmd domain.FetchSinceCommand) ([]domain.Message, error) {
	room, ok := s.rooms.Get(cmd.Room())
	if !ok {
		return nil, errors.ErrRoomNotFound
	}
	s.monitor.IncrFetchCalls()
	return room.Since(cmd.LastSeenID)
}
