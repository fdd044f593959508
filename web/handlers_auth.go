package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apperrors "parley/errors"
)

type screenData struct {
	Message string
	Error   string
}

func (s *Server) loginScreen(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", screenData{
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
	})
}

func (s *Server) registerScreen(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", screenData{
		Message: r.URL.Query().Get("message"),
		Error:   r.URL.Query().Get("error"),
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)

	login := r.FormValue("login")
	secret := r.FormValue("secret")

	token, user, err := s.auth.Login(login, secret)
	if err != nil {
		s.monitor.IncrAuthFailures()
		s.log.Info("Login rejected", "login", login)
		redirectWith(w, r, "/login", "", "Wrong login or secret.")
		return
	}

	s.setSession(w, token.String())
	s.log.Info("Login accepted", "login", user.Login)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)

	login := r.FormValue("login")
	name := r.FormValue("name")
	secret := r.FormValue("secret")
	secret2 := r.FormValue("secret2")

	if secret != secret2 {
		redirectWith(w, r, "/users/new", "", "The secrets do not match.")
		return
	}

	user, err := s.auth.Register(login, name, secret)
	switch {
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		redirectWith(w, r, "/users/new", "", fmt.Sprintf("The user with login %s already exists.", login))
		return
	case err != nil:
		redirectWith(w, r, "/users/new", "", "Invalid registration data.")
		return
	}

	s.log.Info("User registered", "login", user.Login)
	redirectWith(w, r, "/login", "User created. Please log in.", "")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	redirectWith(w, r, "/login", "Bye.", "")
}

func redirectWith(w http.ResponseWriter, r *http.Request, path, message, errMsg string) {
	q := url.Values{}
	if message != "" {
		q.Set("message", message)
	}
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	target := path
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
