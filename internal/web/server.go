package web

import (
	"log/slog"
	"net/http"

	"porthmadog-rfc/internal/clock"
	"porthmadog-rfc/internal/session"
	"porthmadog-rfc/internal/store"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store     store.Store
	sessions  *session.Manager
	templates *Templates
	uploadDir string
	clock     clock.Clock
	logger    *slog.Logger
}

type Options struct {
	Store     store.Store
	Sessions  *session.Manager
	Templates *Templates
	UploadDir string
	Clock     clock.Clock
	Logger    *slog.Logger
}

func NewServer(opts Options) *Server {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     opts.Store,
		sessions:  opts.Sessions,
		templates: opts.Templates,
		uploadDir: opts.UploadDir,
		clock:     c,
		logger:    logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(s.withSession)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/", s.handleHome)
	r.Get("/players", s.handlePlayersPage)
	r.Get("/players/{playerID}", s.handlePlayerPage)
	r.Get("/fixtures", s.handleFixturesPage)
	r.Get("/results", s.handleResultsPage)
	r.Get("/club", s.handleClubPage)
	r.Get("/history", s.handleHistoryPage)
	r.Get("/contact", s.handleContactPage)
	r.Get("/setlang", s.handleSetLang)

	r.Get("/admin/login", s.handleLogin)
	r.Post("/admin/login", s.requireCSRF(s.handleLoginPost))
	r.Post("/admin/logout", s.requireCSRF(s.handleLogout))

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/", s.handleDashboard)

		r.Get("/players", s.handleAdminPlayers)
		r.Get("/players/new", s.handleAdminPlayerNew)
		r.Get("/players/{playerID}/edit", s.handleAdminPlayerEdit)
		r.Post("/players/save", s.requireCSRF(s.handleAdminPlayerSave))
		r.Post("/players/{playerID}/delete", s.requireCSRF(s.handleAdminPlayerDelete))
		r.Post("/players/{playerID}/stats", s.requireCSRF(s.handleAdminStatSave))
		r.Post("/players/{playerID}/stats/{statID}/delete", s.requireCSRF(s.handleAdminStatDelete))

		r.Get("/fixtures", s.handleAdminFixtures)
		r.Get("/fixtures/new", s.handleAdminFixtureNew)
		r.Get("/fixtures/{fixtureID}/edit", s.handleAdminFixtureEdit)
		r.Post("/fixtures/save", s.requireCSRF(s.handleAdminFixtureSave))
		r.Post("/fixtures/{fixtureID}/delete", s.requireCSRF(s.handleAdminFixtureDelete))

		r.Get("/results", s.handleAdminResults)
		r.Get("/results/new", s.handleAdminResultNew)
		r.Get("/results/{resultID}/edit", s.handleAdminResultEdit)
		r.Post("/results/save", s.requireCSRF(s.handleAdminResultSave))
		r.Post("/results/{resultID}/delete", s.requireCSRF(s.handleAdminResultDelete))

		r.Get("/staff", s.handleAdminStaff)
		r.Get("/staff/new", s.handleAdminStaffNew)
		r.Get("/staff/{staffID}/edit", s.handleAdminStaffEdit)
		r.Post("/staff/save", s.requireCSRF(s.handleAdminStaffSave))
		r.Post("/staff/{staffID}/delete", s.requireCSRF(s.handleAdminStaffDelete))

		r.Get("/club", s.handleAdminClub)
		r.Post("/club", s.requireCSRF(s.handleAdminClubSave))
		r.Get("/history", s.handleAdminHistory)
		r.Post("/history", s.requireCSRF(s.handleAdminHistorySave))
	})

	return r
}
