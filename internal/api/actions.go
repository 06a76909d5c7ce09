package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/loadout/internal/models"
	"github.com/meur/loadout/internal/view"
)

var errNoSuchCard = errors.New("no card at that position")

// handleSelectCategory switches the navigation bar to the posted category
func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	category, ok := models.LookupCategory(r.PostFormValue("category"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	var snap view.Snapshot
	if err := s.withState(w, r, func(st *view.State) error {
		st.Select(category)
		snap = st.Snapshot()
		return nil
	}); err != nil {
		s.failed(w, "select category", err)
		return
	}

	s.finish(w, r, snap)
}

// handleToggle expands or collapses the card at {pos} of the current list
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid position")
		return
	}

	var snap view.Snapshot
	err = s.withState(w, r, func(st *view.State) error {
		if pos < 0 || pos >= len(s.catalog.ByCategory(st.Category())) {
			return errNoSuchCard
		}
		st.Toggle(pos)
		snap = st.Snapshot()
		return nil
	})
	if errors.Is(err, errNoSuchCard) {
		respondError(w, http.StatusBadRequest, "Invalid position")
		return
	}
	if err != nil {
		s.failed(w, "toggle card", err)
		return
	}

	s.finish(w, r, snap)
}

// handleDismissPromo hides the promotional panel for the session
func (s *Server) handleDismissPromo(w http.ResponseWriter, r *http.Request) {
	var snap view.Snapshot
	if err := s.withState(w, r, func(st *view.State) error {
		st.DismissPromo()
		snap = st.Snapshot()
		return nil
	}); err != nil {
		s.failed(w, "dismiss promo", err)
		return
	}

	s.finish(w, r, snap)
}

// finish answers a form post with a redirect back to the page, or with the
// new state when the caller asked for JSON
func (s *Server) finish(w http.ResponseWriter, r *http.Request, snap view.Snapshot) {
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, snap)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) failed(w http.ResponseWriter, action string, err error) {
	s.log.Error("action failed", zap.String("action", action), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Failed to "+action)
}
