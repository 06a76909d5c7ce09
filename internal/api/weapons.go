package api

import (
	"net/http"

	"github.com/meur/loadout/internal/models"
	"github.com/meur/loadout/internal/view"
)

// handleGetCategories returns the category enumeration with record counts
func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Counts())
}

// handleGetWeapons returns the derived list for ?category=, which defaults
// to the default category. Unknown categories yield an empty list.
func (s *Server) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.DefaultCategory
	}
	if canonical, ok := models.LookupCategory(category); ok {
		category = canonical
	}

	weapons := s.catalog.ByCategory(category)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category":    category,
		"weapons":     weapons,
		"total_count": len(weapons),
	})
}

// handleGetState returns the caller's UI state
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	var snap view.Snapshot
	if err := s.withState(w, r, func(st *view.State) error {
		snap = st.Snapshot()
		return nil
	}); err != nil {
		s.failed(w, "fetch state", err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
