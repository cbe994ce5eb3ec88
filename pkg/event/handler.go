package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/overlapp/overlapp/internal/rest"
	"github.com/overlapp/overlapp/pkg/grid"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type NewDayDTO struct {
	Weekday   string `json:"weekday,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type NewEventDTO struct {
	Title    string      `json:"title"`
	Timezone string      `json:"timezone"`
	Type     string      `json:"type"`
	Days     []NewDayDTO `json:"days"`
}

type DayDTO struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	Weekday   string `json:"weekday,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type EventDTO struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Timezone string   `json:"timezone"`
	Type     string   `json:"type"`
	Days     []DayDTO `json:"days"`
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto NewEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	newEvent, err := dtoToNewEvent(dto)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), newEvent)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("Created event %d with %d days", created.ID, len(created.Days))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func dtoToNewEvent(dto NewEventDTO) (NewEvent, error) {
	newEvent := NewEvent{
		Title:    dto.Title,
		Timezone: dto.Timezone,
		Type:     Type(dto.Type),
	}
	for _, d := range dto.Days {
		day := NewDay{
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		}
		if d.Date != "" {
			parsed, err := time.Parse(dateFormat, d.Date)
			if err != nil {
				return NewEvent{}, &ValidationError{Reason: "dates must be in YYYY-MM-DD format"}
			}
			day.Date = parsed
		}
		newEvent.Days = append(newEvent.Days, day)
	}
	return newEvent, nil
}

func eventToDTO(e Event) EventDTO {
	dto := EventDTO{
		ID:       e.ID,
		Title:    e.Title,
		Timezone: e.Timezone,
		Type:     string(e.Type),
		Days:     make([]DayDTO, 0, len(e.Days)),
	}
	for _, d := range e.Days {
		dayDTO := DayDTO{
			ID:        d.ID,
			Kind:      string(d.Kind),
			Weekday:   d.Weekday,
			StartTime: d.StartTime.String(),
			EndTime:   d.EndTime.String(),
		}
		if d.Kind == grid.DayKindDate {
			dayDTO.Date = d.Date.Format(dateFormat)
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}
