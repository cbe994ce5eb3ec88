package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/internal/config"
	"github.com/overlapp/overlapp/pkg/auth"
	"github.com/overlapp/overlapp/pkg/participant"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the session cookie into a participant for downstream handlers.
	// Requests without a cookie pass through unauthenticated; a dead session
	// clears the cookie so the browser stops sending it.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			cookie, err := req.Cookie(auth.SessionCookieName)
			if err == nil && cookie.Value != "" {
				p, err := deps.AuthService.Authenticate(ctx, cookie.Value)
				if err != nil {
					if errors.Is(err, auth.ErrSessionNotFound) || errors.Is(err, participant.ErrParticipantNotFound) {
						log.Debug("session cookie did not resolve to an active session")
						http.SetCookie(w, &http.Cookie{
							Name:     auth.SessionCookieName,
							Value:    "",
							Path:     "/",
							MaxAge:   -1,
							HttpOnly: true,
							Secure:   true,
							SameSite: http.SameSiteStrictMode,
						})
					} else {
						log.Errorf("failed to authenticate session: %v", err)
						http.Error(w, err.Error(), http.StatusInternalServerError)
						return
					}
				} else {
					log.Debugf("authenticated participant: %s", p.Username)
					ctx = participant.WithParticipant(ctx, p)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
