package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/internal/service/design"
)

// designService defines the minimal interface needed by DesignHandler.
type designService interface {
	Create(ctx context.Context, input design.CreateInput) (domain.Design, error)
	List(ctx context.Context) ([]domain.RecordSummary, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Design, error)
	Update(ctx context.Context, input design.UpdateInput) (domain.Design, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DesignHandler serves the valve design REST endpoints.
type DesignHandler struct {
	svc designService
	log *slog.Logger
}

// NewDesignHandler creates a DesignHandler.
func NewDesignHandler(svc designService, logger *slog.Logger) *DesignHandler {
	return &DesignHandler{svc: svc, log: logger.With("handler", "design")}
}

type createDesignRequest struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

type updateDesignRequest struct {
	Name *string         `json:"name"`
	Data json.RawMessage `json:"data"`
}

type designResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Create handles POST /api/designs.
func (h *DesignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Create(r.Context(), design.CreateInput{
		Name: req.Name,
		Data: req.Data,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDesignResponse(d))
}

// List handles GET /api/designs.
func (h *DesignHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]recordSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toRecordSummaryResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/designs/{id}.
func (h *DesignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDesignResponse(d))
}

// Update handles PATCH /api/designs/{id}.
func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Update(r.Context(), design.UpdateInput{
		ID:   id,
		Name: req.Name,
		Data: req.Data,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDesignResponse(d))
}

// Delete handles DELETE /api/designs/{id}.
func (h *DesignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDesignResponse(d domain.Design) designResponse {
	return designResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		Data:      d.Data,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
