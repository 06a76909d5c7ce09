package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/config"
	"github.com/meur/loadout/internal/logging"
	"github.com/meur/loadout/internal/session"
)

// Options are the page and transport settings of a Server
type Options struct {
	CookieName     string
	AllowedOrigins []string
	StaticDir      string // Served under /assets when set
	Promo          config.PromoConfig
	Footer         config.FooterConfig
}

// Server holds the HTTP server dependencies
type Server struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	log      *zap.Logger
	opts     Options
	router   chi.Router
}

// New creates a new catalog server
func New(c *catalog.Catalog, sessions *session.Store, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = "loadout_session"
	}

	s := &Server{
		catalog:  c,
		sessions: sessions,
		log:      log,
		opts:     opts,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.Middleware(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	// Page and its form actions
	s.router.Get("/", s.handleIndex)
	s.router.Post("/category", s.handleSelectCategory)
	s.router.Post("/expand/{pos}", s.handleToggle)
	s.router.Post("/promo/dismiss", s.handleDismissPromo)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleGetCategories)
		r.Get("/weapons", s.handleGetWeapons)
		r.Get("/state", s.handleGetState)
	})

	if s.opts.StaticDir != "" {
		FileServer(s.router, "/assets", http.Dir(s.opts.StaticDir))
	}

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
