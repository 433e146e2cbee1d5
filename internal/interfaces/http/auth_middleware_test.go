package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaskas/customer-console/internal/application/auth"
	apphttp "github.com/mdaskas/customer-console/internal/interfaces/http"
	pkgjwt "github.com/mdaskas/customer-console/pkg/jwt"
	"github.com/mdaskas/customer-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp aplicación mínima con AuthMiddleware delante de una página y un endpoint /api
// que devuelven el operador de la petición.
func buildTestApp(uc *auth.UseCase) *fiber.App {
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Log: logger.Nop()})
	protected := app.Group("/", apphttp.AuthMiddleware(uc))
	whoami := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"operator": apphttp.GetOperator(c),
			"context":  auth.OperatorFrom(c.UserContext()),
		})
	}
	protected.Get("/page", whoami)
	protected.Get("/api/me", whoami)
	return app
}

func tokenFor(t *testing.T, cfg auth.Config, operator string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(cfg.JWTSecret, operator, auth.RoleOperator, cfg.Issuer, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza GET path con la cabecera Authorization indicada (vacía = sin cabecera).
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin hash de password configurado el login está deshabilitado y todo pasa.
func TestAuthMiddleware_DeshabilitadoDejaPasar(t *testing.T) {
	app := buildTestApp(auth.NewUseCase(auth.Config{}))
	resp := doRequest(t, app, "/page", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_PaginaSinSesionRedirigeALogin(t *testing.T) {
	app := buildTestApp(auth.NewUseCase(withLogin(t)))
	resp := doRequest(t, app, "/page", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAuthMiddleware_APISinToken401(t *testing.T) {
	app := buildTestApp(auth.NewUseCase(withLogin(t)))
	resp := doRequest(t, app, "/api/me", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido401(t *testing.T) {
	app := buildTestApp(auth.NewUseCase(withLogin(t)))
	resp := doRequest(t, app, "/api/me", "Basic abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenDeOtroSecreto401(t *testing.T) {
	cfg := withLogin(t)
	app := buildTestApp(auth.NewUseCase(cfg))
	other := cfg
	other.JWTSecret = "otro-secreto"
	resp := doRequest(t, app, "/api/me", "Bearer "+tokenFor(t, other, "ops"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BearerCargaOperador(t *testing.T) {
	cfg := withLogin(t)
	app := buildTestApp(auth.NewUseCase(cfg))
	resp := doRequest(t, app, "/api/me", "Bearer "+tokenFor(t, cfg, "ops"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ops", body["operator"])
	assert.Equal(t, "ops", body["context"], "el operador viaja en el contexto hacia el cliente GraphQL")
}

func TestAuthMiddleware_CookieDeSesion(t *testing.T) {
	cfg := withLogin(t)
	app := buildTestApp(auth.NewUseCase(cfg))
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: "console_session", Value: tokenFor(t, cfg, "ops")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens hacia la API GraphQL
// ──────────────────────────────────────────────────────────────────────────────

func TestUpstreamTokens_SujetoEsElOperador(t *testing.T) {
	source := auth.UpstreamTokens("upstream-secret", "console", time.Minute)
	tok, err := source(auth.WithOperator(context.Background(), "ops"))
	require.NoError(t, err)

	operator, _, err := pkgjwt.Parse("upstream-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "ops", operator)
}
