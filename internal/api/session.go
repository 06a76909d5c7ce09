package api

import (
	"net/http"

	"github.com/meur/loadout/internal/view"
)

// withState runs fn on the caller's UI state and makes sure the response
// carries the session cookie the state lives under
func (s *Server) withState(w http.ResponseWriter, r *http.Request, fn func(*view.State) error) error {
	var current string
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		current = c.Value
	}

	id, err := s.sessions.Update(current, fn)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     s.opts.CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
	}
	return err
}
