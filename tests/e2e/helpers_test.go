//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	auditrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/audit"
	designrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/design"
	recordrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/record"
	"github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/user"
	"github.com/mkuznecov/valvecalc-backend/internal/auth"
	"github.com/mkuznecov/valvecalc-backend/internal/config"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	auditsvc "github.com/mkuznecov/valvecalc-backend/internal/service/audit"
	authsvc "github.com/mkuznecov/valvecalc-backend/internal/service/auth"
	designsvc "github.com/mkuznecov/valvecalc-backend/internal/service/design"
	sheetsvc "github.com/mkuznecov/valvecalc-backend/internal/service/sheet"
	"github.com/mkuznecov/valvecalc-backend/internal/transport/middleware"
	"github.com/mkuznecov/valvecalc-backend/internal/transport/rest"
)

// env is the full stack behind an in-process HTTP server: the same wiring
// app.Run builds, minus config loading and signal handling.
type env struct {
	srv  *httptest.Server
	jwt  *auth.JWTManager
	pool *pgxpool.Pool
}

func newEnv(t *testing.T) *env {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.Default()

	users := userrepo.New(pool)
	designs := designrepo.New(pool)
	records := recordrepo.New(pool)
	auditLog := auditrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "e2e-secret-key-0123456789abcdef-0123",
		JWTIssuer:        "valvecalc-e2e",
		AccessTokenTTL:   time.Hour,
		PasswordHashCost: bcrypt.MinCost,
	}
	jwt := auth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, auditLog, tx, jwt, authCfg)
	sheetService := sheetsvc.NewService(logger, records, designs, users, auditLog, tx)
	designService := designsvc.NewService(logger, designs, users, auditLog, tx)
	auditService := auditsvc.NewService(logger, auditLog, users, config.AuditConfig{DefaultPageSize: 50, MaxPageSize: 500})

	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, "e2e"),
		Auth:   rest.NewAuthHandler(authService, logger),
		Sheet:  rest.NewSheetHandler(sheetService, logger),
		Design: rest.NewDesignHandler(designService, logger),
		Admin:  rest.NewAdminHandler(designService, sheetService, auditService, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ClientIP,
		middleware.Auth(jwt),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &env{srv: srv, jwt: jwt, pool: pool}
}

// tokenFor mints an access token for a seeded user.
func (e *env) tokenFor(t *testing.T, u domain.User) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(u.ID, u.Role.String())
	require.NoError(t, err)
	return token
}

// do sends a JSON request and decodes the JSON response body.
func (e *env) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := e.doRaw(t, method, path, token, body)

	if len(raw) == 0 {
		return status, nil
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "response body: %s", raw)
	return status, out
}

// doList is do for endpoints that answer with a JSON array.
func (e *env) doList(t *testing.T, method, path, token string, body any) (int, []map[string]any) {
	t.Helper()
	status, raw := e.doRaw(t, method, path, token, body)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "response body: %s", raw)
	return status, out
}

func (e *env) doRaw(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// register creates a user through the API and returns its token and id.
func (e *env) register(t *testing.T, username, password string) (token, userID string) {
	t.Helper()

	status, resp := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, "register response: %v", resp)

	token, _ = resp["accessToken"].(string)
	require.NotEmpty(t, token)
	user, _ := resp["user"].(map[string]any)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}

// uniqueName builds a username unlikely to collide across parallel tests.
func uniqueName(prefix string) string {
	return prefix + "." + time.Now().Format("150405.000000")
}
