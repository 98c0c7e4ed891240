// Package httpapi is the HTTP boundary around the validation engine. It
// owns the mapping from violations to status codes; the engine itself knows
// nothing about HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsched/rsched/internal/core"
	"github.com/rsched/rsched/internal/guard"
)

// PolicyFunc supplies the policy for one call. Read fresh per request so a
// reloaded policy file takes effect without a restart.
type PolicyFunc func() (core.Policy, error)

type Handler struct {
	source    core.CalendarSource
	validator *guard.Validator
	policy    PolicyFunc
	log       zerolog.Logger
}

func NewHandler(source core.CalendarSource, validator *guard.Validator, policy PolicyFunc, log zerolog.Logger) *Handler {
	return &Handler{
		source:    source,
		validator: validator,
		policy:    policy,
		log:       log.With().Str("component", "httpapi").Logger(),
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/validate", h.handleValidate)
	mux.HandleFunc("POST /api/reschedule", h.handleReschedule)
	return mux
}

type rescheduleRequest struct {
	CalendarID string `json:"calendar_id"`
	EventID    string `json:"event_id"`
	Start      string `json:"start"` // RFC3339
	End        string `json:"end"`   // RFC3339
	TimeZone   string `json:"time_zone,omitempty"`
}

type rescheduleResponse struct {
	Approved   bool             `json:"approved"`
	Violations []core.Violation `json:"violations"`
	Event      *eventSummary    `json:"event,omitempty"`
}

type eventSummary struct {
	ID    string    `json:"id"`
	Title string    `json:"title,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	URL   string    `json:"url,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)
	log := h.log.With().Str("request_id", reqID).Logger()

	violations, _, ok := h.runValidation(w, r, log)
	if !ok {
		return
	}
	writeValidationResult(w, violations)
}

func (h *Handler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)
	log := h.log.With().Str("request_id", reqID).Logger()

	violations, proposal, ok := h.runValidation(w, r, log)
	if !ok {
		return
	}
	if len(violations) > 0 {
		writeValidationResult(w, violations)
		return
	}

	updated, err := h.source.PatchEventTime(r.Context(), proposal.CalendarID, proposal.Event.ID,
		proposal.Start, proposal.End, proposal.UserTimeZone)
	if err != nil {
		log.Error().Err(err).Str("event_id", proposal.Event.ID).Msg("patch failed")
		writeError(w, http.StatusBadGateway, "calendar update failed")
		return
	}

	log.Info().Str("event_id", updated.ID).Time("start", updated.Start).Msg("event rescheduled")
	writeJSON(w, http.StatusOK, rescheduleResponse{
		Approved:   true,
		Violations: []core.Violation{},
		Event: &eventSummary{
			ID:    updated.ID,
			Title: updated.Title,
			Start: updated.Start,
			End:   updated.End,
			URL:   updated.URL,
		},
	})
}

// runValidation parses the request, loads the policy, fetches the event and
// runs the engine. On failure it has already written a response and returns
// ok=false.
func (h *Handler) runValidation(w http.ResponseWriter, r *http.Request, log zerolog.Logger) ([]core.Violation, core.Proposal, bool) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, core.Proposal{}, false
	}
	if req.CalendarID == "" || req.EventID == "" {
		writeError(w, http.StatusBadRequest, "calendar_id and event_id required")
		return nil, core.Proposal{}, false
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be RFC3339")
		return nil, core.Proposal{}, false
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be RFC3339")
		return nil, core.Proposal{}, false
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "start must precede end")
		return nil, core.Proposal{}, false
	}

	pol, err := h.policy()
	if err != nil {
		log.Error().Err(err).Msg("policy load failed")
		writeError(w, http.StatusInternalServerError, "policy unavailable")
		return nil, core.Proposal{}, false
	}

	event, err := h.source.GetEvent(r.Context(), req.CalendarID, req.EventID)
	if err != nil {
		log.Error().Err(err).Str("event_id", req.EventID).Msg("event fetch failed")
		writeError(w, http.StatusBadGateway, "event fetch failed")
		return nil, core.Proposal{}, false
	}

	proposal := core.Proposal{
		Event:        event,
		Start:        start,
		End:          end,
		CalendarID:   req.CalendarID,
		UserTimeZone: req.TimeZone,
	}

	violations, err := h.validator.ValidateReschedule(r.Context(), proposal, pol)
	if err != nil {
		if errors.Is(err, guard.ErrSourceUnavailable) {
			log.Error().Err(err).Msg("availability source unreachable")
			writeError(w, http.StatusBadGateway, "availability data unavailable, reschedule not validated")
			return nil, core.Proposal{}, false
		}
		log.Error().Err(err).Msg("validation failed")
		writeError(w, http.StatusInternalServerError, "validation failed")
		return nil, core.Proposal{}, false
	}
	return violations, proposal, true
}

// writeValidationResult maps violations to status codes: approved → 200,
// conflict anywhere in the list → 409, any other violation → 400.
func writeValidationResult(w http.ResponseWriter, violations []core.Violation) {
	status := http.StatusOK
	for _, v := range violations {
		if v.Code == core.CodeTimeConflict {
			status = http.StatusConflict
			break
		}
		status = http.StatusBadRequest
	}
	writeJSON(w, status, rescheduleResponse{
		Approved:   len(violations) == 0,
		Violations: violations,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
