package app

import (
	"database/sql"

	"github.com/overlapp/overlapp/internal/config"
	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/auth"
	"github.com/overlapp/overlapp/pkg/availability"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/ics"
	"github.com/overlapp/overlapp/pkg/overlap"
	"github.com/overlapp/overlapp/pkg/participant"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventRepo    event.Repository
	EventService *event.Service
	EventHandler *event.Handler

	ParticipantRepo participant.Repository

	SessionRepo auth.Repository
	AuthService *auth.Service
	AuthHandler *auth.Handler

	AvailabilityRepo    availability.Repository
	AvailabilityService *availability.Service
	AvailabilityHandler *availability.Handler

	OverlapService *overlap.Service
	OverlapHandler *overlap.Handler

	IcsService *ics.Service
	IcsHandler *ics.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ParticipantRepo = participant.NewRepository(db)

	deps.SessionRepo = auth.NewRepository(db)
	deps.AuthService = auth.NewService(deps.SessionRepo, deps.ParticipantRepo, deps.EventRepo, cfg.Session, deps.Clock)
	deps.AuthHandler = auth.NewHandler(deps.AuthService)

	deps.AvailabilityRepo = availability.NewRepository(db)
	deps.AvailabilityService = availability.NewService(deps.AvailabilityRepo, deps.EventRepo)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	deps.OverlapService = overlap.NewService(deps.EventRepo, deps.ParticipantRepo, deps.AvailabilityRepo, deps.Clock)
	deps.OverlapHandler = overlap.NewHandler(deps.OverlapService)

	deps.IcsService = ics.NewService(deps.EventRepo, deps.Clock)
	deps.IcsHandler = ics.NewHandler(deps.IcsService)

	return deps
}
