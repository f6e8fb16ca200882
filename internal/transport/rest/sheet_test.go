package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/internal/service/sheet"
)

type sheetServiceMock struct {
	ComputeFunc  func(ctx context.Context, t domain.CalcType, payload json.RawMessage) (json.RawMessage, error)
	DefaultsFunc func(ctx context.Context, t domain.CalcType) (json.RawMessage, error)
	SaveFunc     func(ctx context.Context, input sheet.SaveInput) (domain.Record, error)
	ListFunc     func(ctx context.Context, t domain.CalcType) ([]domain.RecordSummary, error)
	GetFunc      func(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.Record, error)
	UpdateFunc   func(ctx context.Context, input sheet.UpdateInput) (domain.Record, error)
	DeleteFunc   func(ctx context.Context, t domain.CalcType, id uuid.UUID) error
}

func (m *sheetServiceMock) Compute(ctx context.Context, t domain.CalcType, payload json.RawMessage) (json.RawMessage, error) {
	return m.ComputeFunc(ctx, t, payload)
}

func (m *sheetServiceMock) Defaults(ctx context.Context, t domain.CalcType) (json.RawMessage, error) {
	return m.DefaultsFunc(ctx, t)
}

func (m *sheetServiceMock) Save(ctx context.Context, input sheet.SaveInput) (domain.Record, error) {
	return m.SaveFunc(ctx, input)
}

func (m *sheetServiceMock) List(ctx context.Context, t domain.CalcType) ([]domain.RecordSummary, error) {
	return m.ListFunc(ctx, t)
}

func (m *sheetServiceMock) Get(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.Record, error) {
	return m.GetFunc(ctx, t, id)
}

func (m *sheetServiceMock) Update(ctx context.Context, input sheet.UpdateInput) (domain.Record, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *sheetServiceMock) Delete(ctx context.Context, t domain.CalcType, id uuid.UUID) error {
	return m.DeleteFunc(ctx, t, id)
}

// sheetRouter mounts a SheetHandler behind the real route patterns so the
// path variables get exercised.
func sheetRouter(svc *sheetServiceMock) http.Handler {
	return NewRouter(Handlers{Sheet: NewSheetHandler(svc, slog.Default())})
}

func TestSheetTypes_ListsAllButValve(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sheetRouter(&sheetServiceMock{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/sheets", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var types []sheetTypeResponse
	if err := json.NewDecoder(rec.Body).Decode(&types); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(types) != 16 {
		t.Fatalf("len(types) = %d, want 16", len(types))
	}
	for _, st := range types {
		if st.Type == "valve" {
			t.Error("valve must not be listed as a sheet")
		}
	}
	if types[0].Type != "dc001" || types[0].DisplayName != "DC001" {
		t.Errorf("types[0] = %+v", types[0])
	}
}

func TestSheetDefaults_PathTypeNormalized(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		DefaultsFunc: func(_ context.Context, ct domain.CalcType) (json.RawMessage, error) {
			if ct != domain.CalcTypeDC0071 {
				t.Errorf("type = %q, want dc007_1", ct)
			}
			return json.RawMessage(`{"f_n": 5}`), nil
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/sheets/DC007-1/defaults", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "f_n") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestSheetCompute_PassesRawBody(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		ComputeFunc: func(_ context.Context, ct domain.CalcType, payload json.RawMessage) (json.RawMessage, error) {
			if ct != domain.CalcTypeDC003 {
				t.Errorf("type = %q", ct)
			}
			if !strings.Contains(string(payload), "g_mm") {
				t.Errorf("payload = %s", payload)
			}
			return json.RawMessage(`{"sigma": 12.5}`), nil
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sheets/dc003/compute", strings.NewReader(`{"g_mm": 4}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSheetCompute_OversizedBodyRejected(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		ComputeFunc: func(context.Context, domain.CalcType, json.RawMessage) (json.RawMessage, error) {
			t.Error("Compute should not run for an oversized body")
			return nil, nil
		},
	}

	body := strings.NewReader(`{"pad": "` + strings.Repeat("x", maxComputeBody+1) + `"}`)
	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sheets/dc003/compute", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSheetCompute_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		ComputeFunc: func(context.Context, domain.CalcType, json.RawMessage) (json.RawMessage, error) {
			return nil, domain.NewValidationError("type", "unknown calculation type")
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sheets/bogus/compute", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSheetSave_Created(t *testing.T) {
	t.Parallel()

	designID := uuid.New()
	svc := &sheetServiceMock{
		SaveFunc: func(_ context.Context, input sheet.SaveInput) (domain.Record, error) {
			if input.Type != domain.CalcTypeDC001 || input.Name != "stem check" {
				t.Errorf("input = %+v", input)
			}
			if input.DesignID == nil || *input.DesignID != designID {
				t.Errorf("designID = %v", input.DesignID)
			}
			return domain.Record{
				ID:        uuid.New(),
				Type:      input.Type,
				DesignID:  input.DesignID,
				Name:      input.Name,
				Data:      input.Data,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		},
	}

	body := `{"name":"stem check","designId":"` + designID.String() + `","data":{"d_mm":30}}`
	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/sheets/dc001/records", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp recordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Type != "dc001" || resp.Name != "stem check" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.DesignID == nil || *resp.DesignID != designID.String() {
		t.Errorf("designId = %v", resp.DesignID)
	}
}

func TestSheetGet_InvalidID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sheetRouter(&sheetServiceMock{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/sheets/dc001/records/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSheetGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		GetFunc: func(context.Context, domain.CalcType, uuid.UUID) (domain.Record, error) {
			return domain.Record{}, domain.ErrNotFound
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sheets/dc001/records/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSheetUpdate_ClearDesignID(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		UpdateFunc: func(_ context.Context, input sheet.UpdateInput) (domain.Record, error) {
			if !input.ClearDesignID {
				t.Error("clearDesignId flag should be set")
			}
			return domain.Record{ID: input.ID, Type: input.Type, Name: "kept"}, nil
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
		"/api/sheets/dc010/records/"+uuid.NewString(),
		strings.NewReader(`{"clearDesignId":true}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSheetDelete_NoContent(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		DeleteFunc: func(context.Context, domain.CalcType, uuid.UUID) error {
			return nil
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/sheets/dc012/records/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestSheetList_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := &sheetServiceMock{
		ListFunc: func(context.Context, domain.CalcType) ([]domain.RecordSummary, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	rec := httptest.NewRecorder()
	sheetRouter(svc).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/sheets/dc002/records", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
