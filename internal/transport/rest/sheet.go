package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/internal/service/sheet"
)

// sheetService defines the minimal interface needed by SheetHandler.
type sheetService interface {
	Compute(ctx context.Context, t domain.CalcType, payload json.RawMessage) (json.RawMessage, error)
	Defaults(ctx context.Context, t domain.CalcType) (json.RawMessage, error)
	Save(ctx context.Context, input sheet.SaveInput) (domain.Record, error)
	List(ctx context.Context, t domain.CalcType) ([]domain.RecordSummary, error)
	Get(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.Record, error)
	Update(ctx context.Context, input sheet.UpdateInput) (domain.Record, error)
	Delete(ctx context.Context, t domain.CalcType, id uuid.UUID) error
}

// SheetHandler serves the calculation sheet REST endpoints. The sheet type
// comes from the URL path; the service rejects unknown types.
type SheetHandler struct {
	svc sheetService
	log *slog.Logger
}

// NewSheetHandler creates a SheetHandler.
func NewSheetHandler(svc sheetService, logger *slog.Logger) *SheetHandler {
	return &SheetHandler{svc: svc, log: logger.With("handler", "sheet")}
}

type saveRecordRequest struct {
	Name     string          `json:"name"`
	DesignID *uuid.UUID      `json:"designId"`
	Data     json.RawMessage `json:"data"`
}

type updateRecordRequest struct {
	Name          *string         `json:"name"`
	Data          json.RawMessage `json:"data"`
	DesignID      *uuid.UUID      `json:"designId"`
	ClearDesignID bool            `json:"clearDesignId"`
}

type recordResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	DesignID  *string         `json:"designId,omitempty"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type recordSummaryResponse struct {
	ID        string    `json:"id"`
	DesignID  *string   `json:"designId,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type sheetTypeResponse struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

// Types handles GET /api/sheets. Valve data sheets live under /api/designs,
// so the valve type is not listed here.
func (h *SheetHandler) Types(w http.ResponseWriter, r *http.Request) {
	out := make([]sheetTypeResponse, 0, len(domain.AllCalcTypes))
	for _, t := range domain.AllCalcTypes {
		if t == domain.CalcTypeValve {
			continue
		}
		out = append(out, sheetTypeResponse{Type: t.String(), DisplayName: t.DisplayName()})
	}
	writeJSON(w, http.StatusOK, out)
}

// Defaults handles GET /api/sheets/{type}/defaults.
func (h *SheetHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Defaults(r.Context(), pathCalcType(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// maxComputeBody caps the compute payload; sheet inputs are small.
const maxComputeBody = 1 << 20

// Compute handles POST /api/sheets/{type}/compute. The body is the sheet's
// input payload; nothing is persisted.
func (h *SheetHandler) Compute(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxComputeBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Compute(r.Context(), pathCalcType(r), payload)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Save handles POST /api/sheets/{type}/records.
func (h *SheetHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Save(r.Context(), sheet.SaveInput{
		Type:     pathCalcType(r),
		Name:     req.Name,
		Data:     req.Data,
		DesignID: req.DesignID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// List handles GET /api/sheets/{type}/records.
func (h *SheetHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), pathCalcType(r))
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

// Get handles GET /api/sheets/{type}/records/{id}.
func (h *SheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), pathCalcType(r), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Update handles PATCH /api/sheets/{type}/records/{id}.
func (h *SheetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Update(r.Context(), sheet.UpdateInput{
		Type:          pathCalcType(r),
		ID:            id,
		Name:          req.Name,
		Data:          req.Data,
		DesignID:      req.DesignID,
		ClearDesignID: req.ClearDesignID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Delete handles DELETE /api/sheets/{type}/records/{id}.
func (h *SheetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), pathCalcType(r), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathCalcType reads the {type} path segment. "DC007-1" and "dc007_1" both
// resolve to the same sheet.
func pathCalcType(r *http.Request) domain.CalcType {
	t := strings.ToLower(r.PathValue("type"))
	return domain.CalcType(strings.ReplaceAll(t, "-", "_"))
}

// pathUUID reads a UUID path segment, answering 400 itself on garbage.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func toRecordResponse(rec domain.Record) recordResponse {
	return recordResponse{
		ID:        rec.ID.String(),
		Type:      rec.Type.String(),
		DesignID:  uuidString(rec.DesignID),
		Name:      rec.Name,
		Data:      rec.Data,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toRecordSummaryResponse(s domain.RecordSummary) recordSummaryResponse {
	return recordSummaryResponse{
		ID:        s.ID.String(),
		DesignID:  uuidString(s.DesignID),
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
