package app

import (
	"github.com/gorilla/mux"

	"github.com/overlapp/overlapp/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/events", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/{eventId}", deps.EventHandler.GetEvent).Methods("GET")

	// Aggregated grid
	r.HandleFunc("/api/events/{eventId}/grid", deps.OverlapHandler.GetGrid).Methods("GET")

	// Calendar export
	r.HandleFunc("/api/events/{eventId}/calendar.ics", deps.IcsHandler.GetCalendar).Methods("GET")

	// Sign-in / sign-out
	r.HandleFunc("/api/events/{eventId}/signin", deps.AuthHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/signout", deps.AuthHandler.SignOut).Methods("POST")

	// Availability
	r.HandleFunc("/api/availability", deps.AvailabilityHandler.CreateAvailability).Methods("POST")
	r.HandleFunc("/api/availability/{availabilityId}", deps.AvailabilityHandler.DeleteAvailability).Methods("DELETE")
}
