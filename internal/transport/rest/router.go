package rest

import "net/http"

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Sheet  *SheetHandler
	Design *DesignHandler
	Admin  *AdminHandler
}

// NewRouter mounts all REST routes on a ServeMux. Authentication and the
// rest of the chain wrap the returned handler in app.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /api/health", h.Health.Health)

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.HandleFunc("GET /api/sheets", h.Sheet.Types)
	mux.HandleFunc("GET /api/sheets/{type}/defaults", h.Sheet.Defaults)
	mux.HandleFunc("POST /api/sheets/{type}/compute", h.Sheet.Compute)
	mux.HandleFunc("POST /api/sheets/{type}/records", h.Sheet.Save)
	mux.HandleFunc("GET /api/sheets/{type}/records", h.Sheet.List)
	mux.HandleFunc("GET /api/sheets/{type}/records/{id}", h.Sheet.Get)
	mux.HandleFunc("PATCH /api/sheets/{type}/records/{id}", h.Sheet.Update)
	mux.HandleFunc("DELETE /api/sheets/{type}/records/{id}", h.Sheet.Delete)

	mux.HandleFunc("POST /api/designs", h.Design.Create)
	mux.HandleFunc("GET /api/designs", h.Design.List)
	mux.HandleFunc("GET /api/designs/{id}", h.Design.Get)
	mux.HandleFunc("PATCH /api/designs/{id}", h.Design.Update)
	mux.HandleFunc("DELETE /api/designs/{id}", h.Design.Delete)

	mux.HandleFunc("GET /api/admin/designs", h.Admin.ListDesigns)
	mux.HandleFunc("GET /api/admin/designs/{id}", h.Admin.GetDesign)
	mux.HandleFunc("DELETE /api/admin/designs/{id}", h.Admin.DeleteDesign)
	mux.HandleFunc("GET /api/admin/sheets/{type}/records", h.Admin.ListSheetRecords)
	mux.HandleFunc("DELETE /api/admin/sheets/{type}/records/{id}", h.Admin.DeleteSheetRecord)
	mux.HandleFunc("GET /api/admin/audit", h.Admin.RecentAudit)
	mux.HandleFunc("GET /api/admin/audit/{entityType}/{entityId}", h.Admin.EntityAudit)
	mux.HandleFunc("GET /api/users/{id}/audit", h.Admin.ActorAudit)

	return mux
}
