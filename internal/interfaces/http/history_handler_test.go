package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/history"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	apphttp "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles vacíos: aquí solo interesa el alcance por sucursal del handler,
// no el contenido de la línea de tiempo.
// ──────────────────────────────────────────────────────────────────────────────

type stubMovRepo struct{}

func (stubMovRepo) Create(*entity.MovementRecord) error                  { return nil }
func (stubMovRepo) GetByID(string) (*entity.MovementRecord, error)      { return nil, nil }
func (stubMovRepo) GetByReference(string) (*entity.MovementRecord, error) { return nil, nil }
func (stubMovRepo) List(repository.MovementFilter) ([]*entity.MovementRecord, error) {
	return nil, nil
}
func (stubMovRepo) ListByActorLocation(string, repository.MovementFilter) ([]*entity.MovementRecord, error) {
	return nil, nil
}

type stubAuditRepo struct{}

func (stubAuditRepo) Create(*entity.AuditEvent) error { return nil }
func (stubAuditRepo) List(repository.AuditFilter) ([]*entity.AuditEvent, error) {
	return nil, nil
}

func buildHistoryApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewHistoryHandler(history.NewHistoryUseCase(stubMovRepo{}, stubAuditRepo{}))
	app.Get("/api/history", apphttp.AuthMiddleware(testJWTSecret), h.QueryHistory)
	return app
}

// tokenWithLocation genera un JWT con rol y sucursal explícitos.
func tokenWithLocation(t *testing.T, role, locationID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, locationID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getHistory(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests — alcance de visibilidad por sucursal
// ──────────────────────────────────────────────────────────────────────────────

func TestQueryHistory_BodegueroConSucursal_Accede(t *testing.T) {
	app := buildHistoryApp()
	resp := getHistory(t, app, tokenWithLocation(t, "bodeguero", testLocationID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQueryHistory_BodegueroSinSucursal_Retorna403(t *testing.T) {
	app := buildHistoryApp()
	resp := getHistory(t, app, tokenWithLocation(t, "bodeguero", ""))
	defer resp.Body.Close()

	// Sin sucursal asignada no hay alcance que aplicar: negar en vez de
	// mostrar la línea de tiempo completa.
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un rol no admin sin sucursal no debe ver la línea de tiempo global")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestQueryHistory_AdminSinSucursal_Accede(t *testing.T) {
	app := buildHistoryApp()
	resp := getHistory(t, app, tokenWithLocation(t, entity.RoleAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin no tiene alcance por sucursal, con o sin sucursal asignada")
}
