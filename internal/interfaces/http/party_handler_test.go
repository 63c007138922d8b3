package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Contable-api/pkg/jwt"
)

type memPartyRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Party
}

func (r *memPartyRepo) Create(_ context.Context, p *entity.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.rows {
		if x.CompanyID == p.CompanyID && x.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.rows[p.ID] = p
	return nil
}

func (r *memPartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *memPartyRepo) List(_ context.Context, companyID string, _ repository.ListParams) ([]*entity.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Party
	for _, p := range r.rows {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPartyRepo) Update(_ context.Context, p *entity.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = p
	return nil
}

func (r *memPartyRepo) Delete(_ context.Context, _, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func buildPartyApp() *fiber.App {
	h := apphttp.NewPartyHandler(usecase.NewPartyUseCase(&memPartyRepo{rows: map[string]*entity.Party{}}, nil, entity.PaymentTypeCustomer))
	app := fiber.New()
	g := app.Group("/api/customers", apphttp.AuthMiddleware(testJWTSecret, nil))
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body, auth string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var er dto.ErrorResponse
	if resp.StatusCode >= 400 {
		_ = json.NewDecoder(resp.Body).Decode(&er)
	}
	return resp, er
}

func TestPartyHandler_CrearYConsultar(t *testing.T) {
	app := buildPartyApp()
	auth := tokenForRole(t, "admin")

	resp, _ := call(t, app, http.MethodPost, "/api/customers", `{"code":"C001","name":"Acme","email":"ventas@acme.co"}`, auth)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.PartyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "C001", created.Code)

	resp, _ = call(t, app, http.MethodGet, "/api/customers/"+created.ID, "", auth)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, er := call(t, app, http.MethodPost, "/api/customers", `{"code":"C001","name":"Otra"}`, auth)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", er.Code)
}

func TestPartyHandler_Errores(t *testing.T) {
	app := buildPartyApp()
	auth := tokenForRole(t, "admin")

	resp, er := call(t, app, http.MethodPost, "/api/customers", `{"code":`, auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", er.Code)

	resp, er = call(t, app, http.MethodPost, "/api/customers", `{"code":"C9","email":"no-es-email"}`, auth)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "This field is required", er.Fields["name"])
	assert.Equal(t, "Invalid email format", er.Fields["email"])

	resp, er = call(t, app, http.MethodGet, "/api/customers/00000000-0000-0000-0000-00000000ffff", "", auth)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", er.Code)

	resp, _ = call(t, app, http.MethodGet, "/api/customers", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPartyHandler_OtraEmpresaNoVeElRegistro(t *testing.T) {
	app := buildPartyApp()

	resp, _ := call(t, app, http.MethodPost, "/api/customers", `{"code":"C001","name":"Acme"}`, tokenForRole(t, "admin"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.PartyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	other, err := pkgjwt.Generate(testJWTSecret, testUserID, "00000000-0000-0000-0000-000000000099", "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	resp, _ = call(t, app, http.MethodGet, "/api/customers/"+created.ID, "", "Bearer "+other)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/customers", "", "Bearer "+other)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.PartyListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list.Items)
}
