package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/core/service"
)

type HTTPHandler struct {
	vesselService *service.VesselService
	logger        *slog.Logger
}

type CommissionHTTPRequest struct {
	Name     string   `json:"name"`
	Crew     []string `json:"crew"`
	MaxSpeed float64  `json:"max_speed"`
}

type CommandHTTPRequest struct {
	RequestID string `json:"request_id"`
	Order     string `json:"order"`
}

type BoardCrewHTTPRequest struct {
	Name string `json:"name"`
}

type VesselHTTPResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Crew         []string `json:"crew"`
	MaxSpeed     float64  `json:"max_speed"`
	CurrentSpeed float64  `json:"current_speed"`
	Version      int      `json:"version"`
}

type ReportHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RollCallHTTPResponse struct {
	Lines []string `json:"lines"`
}

type LogEntryHTTPResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHTTPHandler(vesselService *service.VesselService, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HTTPHandler{vesselService: vesselService, logger: logger}
}

// Routes returns the router with all routes configured.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/vessels", func(r chi.Router) {
		r.Post("/", h.Commission)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetVessel)
			r.Post("/orders", h.Command)
			r.Get("/roll-call", h.RollCall)
			r.Get("/log", h.CaptainsLog)
			r.Post("/crew", h.BoardCrew)
			r.Delete("/crew/{position}", h.DismissCrew)
		})
	})

	return r
}

func (h *HTTPHandler) Commission(w http.ResponseWriter, r *http.Request) {
	var req CommissionHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.vesselService.Commission(r.Context(), req.Name, req.Crew, req.MaxSpeed)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVesselResponse(v))
}

func (h *HTTPHandler) GetVessel(w http.ResponseWriter, r *http.Request) {
	v, err := h.vesselService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toVesselResponse(v))
}

func (h *HTTPHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req CommandHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Order == "" {
		writeMessage(w, http.StatusBadRequest, "missing required fields")
		return
	}

	report, err := h.vesselService.Command(r.Context(), req.RequestID, chi.URLParam(r, "id"), domain.SpeedOrder(req.Order))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReportHTTPResponse{Success: true, Message: report})
}

func (h *HTTPHandler) RollCall(w http.ResponseWriter, r *http.Request) {
	lines, err := h.vesselService.RollCall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}

	writeJSON(w, http.StatusOK, RollCallHTTPResponse{Lines: lines})
}

func (h *HTTPHandler) CaptainsLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.vesselService.CaptainsLog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]LogEntryHTTPResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LogEntryHTTPResponse{
			ID:        e.ID,
			Event:     string(e.Event),
			Message:   e.Message,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) BoardCrew(w http.ResponseWriter, r *http.Request) {
	var req BoardCrewHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.vesselService.BoardCrew(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReportHTTPResponse{Success: true, Message: req.Name + " came aboard"})
}

func (h *HTTPHandler) DismissCrew(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "position must be an integer")
		return
	}

	name, err := h.vesselService.DismissCrew(r.Context(), chi.URLParam(r, "id"), pos)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReportHTTPResponse{Success: true, Message: name})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	m := lookupError(err)
	if m.status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeMessage(w, m.status, m.message)
}

func toVesselResponse(v *domain.Vessel) VesselHTTPResponse {
	return VesselHTTPResponse{
		ID:           v.ID,
		Name:         v.Name(),
		Crew:         v.Crew(),
		MaxSpeed:     v.MaxSpeed(),
		CurrentSpeed: v.CurrentSpeed(),
		Version:      v.Version,
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ReportHTTPResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
