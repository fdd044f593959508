package web

import (
	"net/http"

	"parley/domain"
)

const sessionCookie = "parley_session"

func (s *Server) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// currentUser resolves the session cookie to an identity. The login
// carried by the token is revalidated against the user directory on
// every request; nothing is cached between requests.
func (s *Server) currentUser(r *http.Request) (domain.Identity, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return domain.Identity{}, false
	}

	claims, err := s.signer.Validate(cookie.Value)
	if err != nil {
		return domain.Identity{}, false
	}

	return s.auth.Revalidate(claims.Login)
}

type userHandler func(w http.ResponseWriter, r *http.Request, user domain.Identity)

// requireUser redirects anonymous callers to the login screen instead
// of answering with an API-style error.
func (s *Server) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}
