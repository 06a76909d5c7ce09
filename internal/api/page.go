package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/meur/loadout/internal/config"
	"github.com/meur/loadout/internal/view"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	view.Page
	Promo  config.PromoConfig
	Footer config.FooterConfig
}

// handleIndex renders the catalog page for the caller's session
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var page view.Page
	if err := s.withState(w, r, func(st *view.State) error {
		page = view.Render(s.catalog, st)
		return nil
	}); err != nil {
		s.failed(w, "render page", err)
		return
	}

	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, pageData{
		Page:   page,
		Promo:  s.opts.Promo,
		Footer: s.opts.Footer,
	}); err != nil {
		s.log.Error("template failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
