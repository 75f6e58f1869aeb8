package randomness

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// Handler handles random number HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new randomness handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "randomness").Logger(),
	}
}

// RegisterRoutes registers all randomness routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/random", h.HandleDraw)
}

// HandleDraw handles GET /api/random?outcomes=N&shots=S
func (h *Handler) HandleDraw(w http.ResponseWriter, r *http.Request) {
	outcomes, err := strconv.Atoi(r.URL.Query().Get("outcomes"))
	if err != nil {
		http.Error(w, "Missing or invalid param outcomes", http.StatusBadRequest)
		return
	}
	shots := 1
	if s := r.URL.Query().Get("shots"); s != "" {
		shots, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, "Invalid param shots", http.StatusBadRequest)
			return
		}
	}

	draw, err := h.service.Draw(r.Context(), outcomes, shots)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"draw_id":           draw.ID,
			"random_number":     draw.RandomNumber,
			"normalized_spread": draw.NormalizedSpread,
			"num_qubits":        draw.NumQubits,
			"tie_broken":        draw.TieBroken,
			"backend":           draw.Backend,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// writeError maps pipeline error kinds to HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qrng.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, qrng.ErrNoValidOutcomes):
		// retryable by the caller with more shots
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, qrng.ErrBackendUnavailable), errors.Is(err, qrng.ErrExecutionFailed):
		h.log.Error().Err(err).Msg("Backend error during draw")
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, qrng.ErrDegenerateDistribution):
		h.log.Error().Err(err).Msg("Degenerate distribution during draw")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		h.log.Error().Err(err).Msg("Draw failed")
		http.Error(w, "Draw failed", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
