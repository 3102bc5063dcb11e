package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/internal/application/auth"
	apphttp "github.com/cyclonet/factonet-api/internal/interfaces/http"
	pkgjwt "github.com/cyclonet/factonet-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "factonet-test"
	testExpMin    = 60
)

// fakeClock reloj manual para la expiración por inactividad.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT, renovar la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessions *auth.SessionStore, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"role":       apphttp.GetRole(c),
				"user_id":    apphttp.GetUserID(c),
				"session_id": apphttp.GetSessionID(c),
			})
		},
	)
	return app
}

// tokenForRole abre una sesión y genera un JWT atado a ella con el rol indicado.
func tokenForRole(t *testing.T, sessions *auth.SessionStore, role string) (string, auth.Session) {
	t.Helper()
	sess := sessions.Create(testUserID, role)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, sess.ID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok, sess
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin")
	header, sess := tokenForRole(t, sessions, "admin")

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, sess.ID, body["session_id"])
}

func TestRequireRole_OperadorAccedeRutaMultiRol(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin", "operador")
	header, _ := tokenForRole(t, sessions, "operador")

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin")
	header, _ := tokenForRole(t, sessions, "cliente")

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin")
	header, _ := tokenForRole(t, sessions, "")

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(auth.NewSessionStore(time.Minute), "admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(auth.NewSessionStore(time.Minute), "admin")
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer"} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN", header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_SesionDesconocida_Retorna401(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "sesion-inexistente", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SESSION_EXPIRED")
}

func TestAuthMiddleware_ExpiraPorInactividad(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
	sessions := auth.NewSessionStore(3 * time.Minute).WithClock(clock.Now)
	app := buildTestApp(sessions, "admin")
	header, _ := tokenForRole(t, sessions, "admin")

	// Cada petición renueva la sesión.
	for i := 0; i < 3; i++ {
		clock.Advance(2 * time.Minute)
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "petición %d", i)
		resp.Body.Close()
	}

	clock.Advance(3*time.Minute + time.Second)
	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SESSION_EXPIRED")
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthMiddleware_LogoutInvalidaElToken(t *testing.T) {
	sessions := auth.NewSessionStore(3 * time.Minute)
	app := buildTestApp(sessions, "admin")
	header, sess := tokenForRole(t, sessions, "admin")

	sessions.Destroy(sess.ID)

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
