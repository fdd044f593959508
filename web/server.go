// Package web serves the browser-facing surface: server-rendered
// screens, the session cookie, and the JSON polling endpoints.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"parley/auth"
	"parley/observability"
	"parley/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	log              *slog.Logger
	auth             services.IAuthService
	chat             services.IChatService
	search           *services.SearchService
	signer           *auth.TokenSigner
	monitor          *observability.Monitor
	maxContentLength int
	templates        *template.Template
}

func NewServer(
	log *slog.Logger,
	authService services.IAuthService,
	chatService services.IChatService,
	searchService *services.SearchService,
	signer *auth.TokenSigner,
	monitor *observability.Monitor,
	maxContentLength int,
) *Server {
	return &Server{
		log:              log,
		auth:             authService,
		chat:             chatService,
		search:           searchService,
		signer:           signer,
		monitor:          monitor,
		maxContentLength: maxContentLength,
		templates:        template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// Routes wires every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.loginScreen)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /users/new", s.registerScreen)
	mux.HandleFunc("POST /users/new", s.register)
	mux.HandleFunc("POST /logout", s.logout)

	mux.HandleFunc("GET /{$}", s.requireUser(s.menu))
	mux.HandleFunc("POST /chat/new", s.requireUser(s.newRoom))
	mux.HandleFunc("GET /rooms", s.requireUser(s.roomList))
	mux.HandleFunc("GET /chat/{roomID}", s.requireUser(s.roomPage))
	mux.HandleFunc("GET /chat/{roomID}/messages", s.requireUser(s.allMessages))
	mux.HandleFunc("GET /chat/{roomID}/since/{lastSeenID}", s.requireUser(s.messagesSince))
	mux.HandleFunc("POST /chat/{roomID}", s.requireUser(s.postMessage))
	mux.HandleFunc("GET /search", s.requireUser(s.searchPage))

	return mux
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("Template rendering failed", "template", name, "err", err)
	}
}
