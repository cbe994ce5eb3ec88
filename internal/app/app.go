package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/internal/config"
	"github.com/overlapp/overlapp/internal/database"
	"github.com/overlapp/overlapp/internal/rest"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	router  *mux.Router
	srv     *http.Server
	sweeper *cron.Cron
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Session.CleanupSchedule, func() {
		if err := deps.AuthService.CloseExpired(context.Background()); err != nil {
			log.Errorf("expired session sweep failed: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, sweeper: sweeper}, nil
}

// Run starts the session sweeper and the HTTP server, and blocks.
func (a *Application) Run() error {
	a.sweeper.Start()
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
