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

	"github.com/jhoicas/Contable-api/internal/domain/access"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Contable-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "contable-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, nil),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	emptyRole, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name     string
		allowed  []string
		auth     string
		want     int
		wantCode string
	}{
		{"admin en ruta admin", []string{"admin"}, tokenForRole(t, "admin"), http.StatusOK, ""},
		{"manager en ruta admin o manager", []string{"admin", "manager"}, tokenForRole(t, "manager"), http.StatusOK, ""},
		{"staff en ruta admin", []string{"admin"}, tokenForRole(t, "staff"), http.StatusForbidden, "FORBIDDEN"},
		{"accountant en ruta manager", []string{"manager"}, tokenForRole(t, "accountant"), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, "Bearer " + emptyRole, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, "", http.StatusUnauthorized, ""},
		{"token malformado", []string{"admin"}, "Bearer token.invalido.aqui", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(tc.allowed...), tc.auth)
			defer resp.Body.Close()

			assert.Equal(t, tc.want, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			if tc.wantCode != "" {
				assert.Contains(t, string(body), tc.wantCode)
			}
			if tc.want == http.StatusOK {
				var out map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Equal(t, true, out["ok"])
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests revocación (logout)
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenRevocado_Retorna401(t *testing.T) {
	store := cache.NewMemoryStore()
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, store), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	header := tokenForRole(t, "admin")
	claims, err := pkgjwt.ParseClaims(testJWTSecret, header[len("Bearer "):])
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, store.Revoke(context.Background(), claims.ID, time.Now().Add(time.Hour)))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "REVOKED_TOKEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission (matriz rol × módulo × acción)
// ──────────────────────────────────────────────────────────────────────────────

func permissionApp(module string) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	g := app.Group("/r", apphttp.AuthMiddleware(testJWTSecret, nil), apphttp.RequirePermission(module))
	g.Get("/", ok)
	g.Post("/", ok)
	g.Put("/", ok)
	g.Delete("/", ok)
	return app
}

func TestRequirePermission_AccionSegunMetodo(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		module string
		method string
		want   int
	}{
		{"staff ve contabilidad", "staff", access.ModuleAccounting, http.MethodGet, http.StatusOK},
		{"staff no crea en contabilidad", "staff", access.ModuleAccounting, http.MethodPost, http.StatusForbidden},
		{"staff no ve reportes", "staff", access.ModuleReports, http.MethodGet, http.StatusForbidden},
		{"accountant no elimina ventas", "accountant", access.ModuleSales, http.MethodDelete, http.StatusForbidden},
		{"accountant edita ventas", "accountant", access.ModuleSales, http.MethodPut, http.StatusOK},
		{"manager no edita configuración", "manager", access.ModuleSettings, http.MethodPut, http.StatusForbidden},
		{"admin elimina configuración", "admin", access.ModuleSettings, http.MethodDelete, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := permissionApp(tc.module)
			req := httptest.NewRequest(tc.method, "/r", nil)
			req.Header.Set("Authorization", tokenForRole(t, tc.role))
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ActiveUser (estado y rol vigentes)
// ──────────────────────────────────────────────────────────────────────────────

type userLookup map[string]*entity.User

func (u userLookup) GetByID(_ context.Context, id string) (*entity.User, error) {
	return u[id], nil
}

func TestActiveUser_UsaEstadoYRolVigentes(t *testing.T) {
	cases := []struct {
		name     string
		user     *entity.User
		want     int
		wantCode string
	}{
		{"activo conserva acceso", &entity.User{ID: testUserID, CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserStatusActive}, http.StatusOK, ""},
		{"degradado a staff", &entity.User{ID: testUserID, CompanyID: testCompanyID, Role: entity.RoleStaff, Status: entity.UserStatusActive}, http.StatusForbidden, "FORBIDDEN"},
		{"desactivado", &entity.User{ID: testUserID, CompanyID: testCompanyID, Role: entity.RoleAdmin, Status: entity.UserStatusInactive}, http.StatusUnauthorized, "USER_INACTIVE"},
		{"eliminado", nil, http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := userLookup{}
			if tc.user != nil {
				users[testUserID] = tc.user
			}
			app := fiber.New()
			app.Put("/settings",
				apphttp.AuthMiddleware(testJWTSecret, nil),
				apphttp.ActiveUser(users),
				apphttp.RequirePermission(access.ModuleSettings),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)

			req := httptest.NewRequest(http.MethodPut, "/settings", nil)
			req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.wantCode != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.wantCode)
			}
		})
	}
}
