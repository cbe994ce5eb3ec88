package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/internal/rest"
	"github.com/overlapp/overlapp/pkg/participant"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type NewAvailabilityDTO struct {
	DayID     int    `json:"dayId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailabilityDTO struct {
	ID            int    `json:"id"`
	ParticipantID int    `json:"participantId"`
	DayID         int    `json:"dayId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	current, err := participant.Current(r.Context())
	if err != nil {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	var dto NewAvailabilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), current, NewAvailability{
		DayID:     dto.DayID,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
	})
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: validationErr.Error()}); encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("Participant %d marked day %d free from %s to %s",
		current.ID, created.DayID, created.StartTime, created.EndTime)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(availabilityToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	current, err := participant.Current(r.Context())
	if err != nil {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["availabilityId"])
	if err != nil {
		http.Error(w, "invalid availability id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), current, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "availability not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func availabilityToDTO(a Availability) AvailabilityDTO {
	return AvailabilityDTO{
		ID:            a.ID,
		ParticipantID: a.ParticipantID,
		DayID:         a.DayID,
		StartTime:     a.StartTime.String(),
		EndTime:       a.EndTime.String(),
	}
}
