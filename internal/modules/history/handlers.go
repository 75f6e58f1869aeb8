package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles draw history HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "history").Logger(),
	}
}

// RegisterRoutes registers all history routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.HandleListDraws)
		r.Get("/{id}", h.HandleGetDraw)
		r.Get("/calibrations", h.HandleListCalibrations)
	})
}

// HandleListDraws handles GET /api/history?limit=N
func (h *Handler) HandleListDraws(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	draws, err := h.repo.ListDraws(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list draws")
		http.Error(w, "Failed to list draws", http.StatusInternalServerError)
		return
	}
	if draws == nil {
		draws = []Draw{}
	}
	h.writeJSON(w, map[string]interface{}{"draws": draws})
}

// HandleGetDraw handles GET /api/history/{id}
func (h *Handler) HandleGetDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	draw, err := h.repo.GetDraw(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Draw not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get draw")
		http.Error(w, "Failed to get draw", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, draw)
}

// HandleListCalibrations handles GET /api/history/calibrations?limit=N
func (h *Handler) HandleListCalibrations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.repo.RecentCalibrationRuns(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list calibration runs")
		http.Error(w, "Failed to list calibration runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []CalibrationRun{}
	}
	h.writeJSON(w, map[string]interface{}{"calibrations": runs})
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
