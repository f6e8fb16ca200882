package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/internal/service/audit"
	"github.com/mkuznecov/valvecalc-backend/internal/service/design"
	"github.com/mkuznecov/valvecalc-backend/internal/service/sheet"
)

type designAdminService interface {
	ListAll(ctx context.Context, input design.AdminListInput) ([]domain.DesignOverview, error)
	GetAny(ctx context.Context, id uuid.UUID) (domain.DesignWithUser, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}

type sheetAdminService interface {
	ListAll(ctx context.Context, t domain.CalcType, input sheet.AdminListInput) ([]domain.RecordOverview, error)
	DeleteAny(ctx context.Context, t domain.CalcType, id uuid.UUID) error
}

type auditService interface {
	ListRecent(ctx context.Context, p audit.Page) ([]domain.AuditEntry, error)
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, p audit.Page) ([]domain.AuditEntry, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, p audit.Page) ([]domain.AuditEntry, error)
}

// AdminHandler serves superadmin REST endpoints. Authorization happens in
// the services against the stored user role, not here.
type AdminHandler struct {
	designs designAdminService
	sheets  sheetAdminService
	audit   auditService
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(designs designAdminService, sheets sheetAdminService, auditSvc auditService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		designs: designs,
		sheets:  sheets,
		audit:   auditSvc,
		log:     logger.With("handler", "admin"),
	}
}

type designOverviewResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	NPS        *string   `json:"nps,omitempty"`
	ASMEClass  *string   `json:"asmeClass,omitempty"`
	WallMM     *string   `json:"wallMm,omitempty"`
	BoreMM     *string   `json:"boreMm,omitempty"`
	FaceToFace *string   `json:"faceToFace,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type recordOverviewResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	DesignID  *string   `json:"designId,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type designWithUserResponse struct {
	designResponse
	Username string `json:"username"`
}

type auditEntryResponse struct {
	ID            int64           `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	ActorUserID   *string         `json:"actorUserId,omitempty"`
	ActorUsername string          `json:"actorUsername"`
	ActorRole     string          `json:"actorRole"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entityType"`
	EntityID      *string         `json:"entityId,omitempty"`
	Name          *string         `json:"name,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	IP            *string         `json:"ip,omitempty"`
}

// ListDesigns returns designs across all users with owner and headline figures.
// GET /api/admin/designs?username=&name=&limit=
func (h *AdminHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := design.AdminListInput{
		Username: q.Get("username"),
		Name:     q.Get("name"),
	}
	if v := q.Get("limit"); v != "" {
		json.Unmarshal([]byte(v), &input.Limit) //nolint:errcheck
	}

	list, err := h.designs.ListAll(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]designOverviewResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDesignOverviewResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDesign returns any user's design with its owner.
// GET /api/admin/designs/{id}
func (h *AdminHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	d, err := h.designs.GetAny(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, designWithUserResponse{
		designResponse: toDesignResponse(d.Design),
		Username:       d.Username,
	})
}

// DeleteDesign removes any user's design.
// DELETE /api/admin/designs/{id}
func (h *AdminHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.designs.DeleteAny(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSheetRecords returns records of one sheet type across all users with
// their owners.
// GET /api/admin/sheets/{type}/records?username=&name=&limit=
func (h *AdminHandler) ListSheetRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := sheet.AdminListInput{
		Username: q.Get("username"),
		Name:     q.Get("name"),
	}
	if v := q.Get("limit"); v != "" {
		json.Unmarshal([]byte(v), &input.Limit) //nolint:errcheck
	}

	list, err := h.sheets.ListAll(r.Context(), pathCalcType(r), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]recordOverviewResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, toRecordOverviewResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteSheetRecord removes any user's record.
// DELETE /api/admin/sheets/{type}/records/{id}
func (h *AdminHandler) DeleteSheetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sheets.DeleteAny(r.Context(), pathCalcType(r), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecentAudit returns the newest audit entries across all actors.
// GET /api/admin/audit?limit=&offset=
func (h *AdminHandler) RecentAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audit.ListRecent(r.Context(), pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeAuditEntries(w, entries)
}

// EntityAudit returns the history of one entity, newest first.
// GET /api/admin/audit/{entityType}/{entityId}
func (h *AdminHandler) EntityAudit(w http.ResponseWriter, r *http.Request) {
	entityID, ok := pathUUID(w, r, "entityId")
	if !ok {
		return
	}
	entityType := domain.EntityType(r.PathValue("entityType"))

	entries, err := h.audit.ListByEntity(r.Context(), entityType, entityID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeAuditEntries(w, entries)
}

// ActorAudit returns one user's actions. Users may read their own trail;
// reading another user's requires superadmin.
// GET /api/users/{id}/audit?limit=&offset=
func (h *AdminHandler) ActorAudit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.audit.ListByActor(r.Context(), actorID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeAuditEntries(w, entries)
}

func pageFromQuery(r *http.Request) audit.Page {
	var p audit.Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		json.Unmarshal([]byte(v), &p.Limit) //nolint:errcheck
	}
	if v := q.Get("offset"); v != "" {
		json.Unmarshal([]byte(v), &p.Offset) //nolint:errcheck
	}
	return p
}

func writeAuditEntries(w http.ResponseWriter, entries []domain.AuditEntry) {
	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func toDesignOverviewResponse(d domain.DesignOverview) designOverviewResponse {
	return designOverviewResponse{
		ID:         d.ID.String(),
		Username:   d.Username,
		Name:       d.Name,
		NPS:        d.NPS,
		ASMEClass:  d.ASMEClass,
		WallMM:     d.WallMM,
		BoreMM:     d.BoreMM,
		FaceToFace: d.FaceToFace,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toRecordOverviewResponse(o domain.RecordOverview) recordOverviewResponse {
	return recordOverviewResponse{
		ID:        o.ID.String(),
		Username:  o.Username,
		DesignID:  uuidString(o.DesignID),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toAuditEntryResponse(e domain.AuditEntry) auditEntryResponse {
	return auditEntryResponse{
		ID:            e.ID,
		CreatedAt:     e.CreatedAt,
		ActorUserID:   uuidString(e.ActorUserID),
		ActorUsername: e.ActorUsername,
		ActorRole:     e.ActorRole.String(),
		Action:        e.Action.String(),
		EntityType:    e.EntityType.String(),
		EntityID:      uuidString(e.EntityID),
		Name:          e.Name,
		Details:       e.Details,
		IP:            e.IP,
	}
}
