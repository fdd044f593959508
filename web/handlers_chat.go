package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"parley/domain"
	"parley/domain/search"
	apperrors "parley/errors"
	"parley/services"
)

type menuData struct {
	User    domain.Identity
	Rooms   []*domain.Room
	Message string
	Error   string
}

func (s *Server) menu(w http.ResponseWriter, r *http.Request, user domain.Identity) {
	s.render(w, "menu.html", menuData{
		User:    user,
		Rooms:   s.chat.ListRooms(),
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
	})
}

func (s *Server) newRoom(w http.ResponseWriter, r *http.Request, user domain.Identity) {
	name := r.FormValue("name")
	id := s.chat.CreateRoom(name)
	http.Redirect(w, r, "/chat/"+strconv.Itoa(int(id)), http.StatusSeeOther)
}

type roomData struct {
	User       domain.Identity
	Room       *domain.Room
	Messages   []domain.Message
	LastSeenID int
}

func (s *Server) roomPage(w http.ResponseWriter, r *http.Request, user domain.Identity) {
	room, ok := s.resolveRoom(w, r)
	if !ok {
		return
	}

	messages := room.Snapshot()
	lastSeen := 0
	if len(messages) > 0 {
		lastSeen = messages[len(messages)-1].ID
	}
	s.render(w, "chat.html", roomData{
		User:       user,
		Room:       room,
		Messages:   messages,
		LastSeenID: lastSeen,
	})
}

func (s *Server) allMessages(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	room, ok := s.resolveRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, room.Snapshot())
}

func (s *Server) messagesSince(w http.ResponseWriter, r *http.Request, _ domain.Identity) {
	roomID, err := strconv.Atoi(r.PathValue("roomID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	lastSeenID, err := strconv.Atoi(r.PathValue("lastSeenID"))
	if err != nil {
		http.Error(w, "invalid last seen id", http.StatusBadRequest)
		return
	}

	messages, err := s.chat.MessagesSince(domain.FetchSinceCommand{
		RoomID:     roomID,
		LastSeenID: lastSeenID,
	})
	switch {
	case errors.Is(err, apperrors.ErrRoomNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, apperrors.ErrInvalidLastSeenID):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, messages)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request, user domain.Identity) {
	roomID, err := strconv.Atoi(r.PathValue("roomID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.maxContentLength)))
	if err != nil {
		http.Error(w, "message too long", http.StatusRequestEntityTooLarge)
		return
	}

	_, err = s.chat.PostMessage(domain.PostMessageCommand{
		RoomID: roomID,
		Author: user,
		Text:   string(body),
	})
	if errors.Is(err, apperrors.ErrRoomNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
}

type roomSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

func (s *Server) roomList(w http.ResponseWriter, _ *http.Request, _ domain.Identity) {
	rooms := s.chat.ListRooms()
	summaries := make([]roomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, roomSummary{
			ID:       int(room.ID),
			Name:     room.Name,
			Messages: room.Len(),
		})
	}
	writeJSON(w, summaries)
}

type searchData struct {
	User    domain.Identity
	Query   string
	Results []services.Result
	Error   string
}

func (s *Server) searchPage(w http.ResponseWriter, r *http.Request, user domain.Identity) {
	raw := r.URL.Query().Get("q")
	data := searchData{User: user, Query: raw}

	if raw != "" {
		results, err := s.search.Search(r.Context(), search.NewQuery(raw))
		if err != nil {
			s.log.Error("Search failed", "query", raw, "err", err)
			data.Error = "Search failed."
		} else {
			data.Results = results
		}
	}

	s.render(w, "search.html", data)
}

func (s *Server) resolveRoom(w http.ResponseWriter, r *http.Request) (*domain.Room, bool) {
	roomID, err := strconv.Atoi(r.PathValue("roomID"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	room, err := s.chat.Room(domain.RoomID(roomID))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return room, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
