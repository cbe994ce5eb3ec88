package overlap

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/internal/rest"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ViewDTO struct {
	EventID        int              `json:"eventId"`
	Title          string           `json:"title"`
	EventTimezone  string           `json:"eventTimezone"`
	ViewerTimezone string           `json:"viewerTimezone"`
	OffsetHours    float64          `json:"offsetHours"`
	Rows           []string         `json:"rows"`
	Days           []DayViewDTO     `json:"days"`
	Participants   []ParticipantDTO `json:"participants"`
	MaxCount       int              `json:"maxCount"`
}

type DayViewDTO struct {
	Date  string        `json:"date"`
	Cells []CellViewDTO `json:"cells"`
}

type CellViewDTO struct {
	Valid       bool             `json:"valid"`
	Count       int              `json:"count"`
	Intensity   int              `json:"intensity"`
	Available   []ParticipantDTO `json:"available,omitempty"`
	Unavailable []ParticipantDTO `json:"unavailable,omitempty"`
}

type ParticipantDTO struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	view, err := h.service.Grid(r.Context(), eventID, r.URL.Query().Get("timezone"))
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			http.Error(w, "event not found", http.StatusNotFound)
		case errors.As(err, &validationErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: validationErr.Error()}); encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Debugf("Computed grid for event %d in %s: %d rows x %d days",
		eventID, view.ViewerTimezone, len(view.Rows), len(view.Days))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(viewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func viewToDTO(view *View) ViewDTO {
	dto := ViewDTO{
		EventID:        view.EventID,
		Title:          view.Title,
		EventTimezone:  view.EventTimezone,
		ViewerTimezone: view.ViewerTimezone,
		OffsetHours:    view.OffsetHours,
		Rows:           make([]string, 0, len(view.Rows)),
		Days:           make([]DayViewDTO, 0, len(view.Days)),
		Participants:   participantDTOs(view.Participants),
		MaxCount:       view.MaxCount,
	}
	for _, row := range view.Rows {
		dto.Rows = append(dto.Rows, row.String())
	}
	for _, day := range view.Days {
		dayDTO := DayViewDTO{
			Date:  day.Date.Format("2006-01-02"),
			Cells: make([]CellViewDTO, 0, len(day.Cells)),
		}
		for _, cell := range day.Cells {
			dayDTO.Cells = append(dayDTO.Cells, CellViewDTO{
				Valid:       cell.Valid,
				Count:       cell.Count,
				Intensity:   cell.Intensity,
				Available:   participantDTOs(cell.Available),
				Unavailable: participantDTOs(cell.Unavailable),
			})
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}

func participantDTOs(participants []grid.Participant) []ParticipantDTO {
	out := make([]ParticipantDTO, 0, len(participants))
	for _, p := range participants {
		out = append(out, ParticipantDTO{ID: p.ID, Username: p.Username})
	}
	return out
}
