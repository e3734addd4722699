package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/authly/authly-rhythm/internal/api/middleware"
	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/go-chi/chi/v5"
)

type ChartHandler struct {
	chartService *service.ChartService
}

func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

type CreateChartRequest struct {
	Title      string            `json:"title"`
	AudioURL   string            `json:"audioUrl"`
	KeyPresses []domain.KeyPress `json:"keyPresses"`
}

type CreateChartResponse struct {
	ID int `json:"id"`
}

// List responds with one page of charts, newest first, and puts the
// total chart count in the X-Total-Count header.
func (h *ChartHandler) List(w http.ResponseWriter, r *http.Request) error {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", service.DefaultChartLimit)

	charts, total, err := h.chartService.List(r.Context(), page, limit)
	if err != nil {
		return err
	}
	if charts == nil {
		charts = []*domain.Chart{}
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	RespondJSON(w, http.StatusOK, charts)
	return nil
}

// Get responds with the chart, or a JSON null when the id is unknown.
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return domain.BadRequest("Invalid chart id")
	}

	chart, err := h.chartService.Get(r.Context(), id)
	if err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, chart)
	return nil
}

func (h *ChartHandler) Create(w http.ResponseWriter, r *http.Request) error {
	subject, ok := middleware.GetSubject(r.Context())
	if !ok {
		return domain.Unauthorized("Unauthorized")
	}

	var req CreateChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.BadRequest("Invalid request body")
	}

	id, err := h.chartService.Create(r.Context(), subject, req.Title, req.AudioURL, req.KeyPresses)
	if err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, CreateChartResponse{ID: id})
	return nil
}

func (h *ChartHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	subject, ok := middleware.GetSubject(r.Context())
	if !ok {
		return domain.Unauthorized("Unauthorized")
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return domain.BadRequest("Invalid chart id")
	}

	if err := h.chartService.Delete(r.Context(), subject, id); err != nil {
		return err
	}

	RespondJSON(w, http.StatusOK, map[string]string{"message": "Chart deleted"})
	return nil
}

// queryInt reads an integer query parameter, falling back when it is
// absent or non-numeric.
func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
