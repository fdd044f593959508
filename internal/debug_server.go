package internal

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"parley/domain"
	"parley/repositories"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Room      string
	ID        string
	Timestamp string
	Author    string
	Lang      string
	Text      string
}

type StatsProvider func() map[string]any

type PageData struct {
	Room  string
	Items []InspectRow
	Stats map[string]any
}

// StartDebugServer exposes a live read-only view over the in-memory
// stores on its own port. Meant for development, never for users.
func StartDebugServer(rooms repositories.IRoomRepository, port int, endpoint string, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		roomFilter := r.URL.Query().Get("room")

		data := PageData{
			Room:  roomFilter,
			Stats: make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		for _, room := range rooms.List() {
			if roomFilter != "" && roomFilter != strconv.Itoa(int(room.ID)) {
				continue
			}
			for _, m := range room.Snapshot() {
				data.Items = append(data.Items, toRow(room, m))
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

func toRow(room *domain.Room, m domain.Message) InspectRow {
	return InspectRow{
		Room:      fmt.Sprintf("%d (%s)", room.ID, room.Name),
		ID:        strconv.Itoa(m.ID),
		Timestamp: m.Time.Formatted(),
		Author:    m.Author.Login,
		Lang:      m.Lang,
		Text:      m.Text,
	}
}
