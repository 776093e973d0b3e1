package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmanager-api/internal/application/dto"
	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/application/usecase"
	"github.com/jhoicas/stockmanager-api/internal/domain/entity"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/stockmanager-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el driver en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New()
	log := zerolog.Nop()

	balances := inventory.NewBalanceStore(store.Balances(), inventory.BalanceOptions{
		BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond,
	}, m, log)
	coord := inventory.NewCoordinator(store.Movements(), balances, time.Second, m, log)
	catalogUC := usecase.NewCatalogUseCase(store.Catalog(), store.TxRunner(), balances, time.Second, log)
	gateway := query.NewGateway(store.Movements(), store.Balances(), store.SalesSummary(), store.Catalog(),
		time.Second, m, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Coordinator: coord,
		CatalogUC:   catalogUC,
		Query:       gateway,
		Metrics:     m.Handler(),
	})
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EntradaSalidaYSaldo(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"A1","quantity":5,"date":"2026-03-01"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, "IN", mov.Direction)
	assert.Equal(t, "2026-03-01", mov.Date)

	resp = do(t, app, http.MethodPost, "/api/movements/out", `{"sku":"A1","quantity":2}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/balances/A1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, resp)
	assert.Equal(t, int64(3), bal.CurrentStock)
}

func TestRouter_Validacion(t *testing.T) {
	app, _ := buildTestApp(t)

	cases := []struct {
		name, path, body string
	}{
		{"cantidad cero", "/api/movements/in", `{"sku":"A1","quantity":0}`},
		{"sku vacío", "/api/movements/out", `{"sku":" ","quantity":1}`},
		{"dirección inválida", "/api/movements/sideways", `{"sku":"A1","quantity":1}`},
		{"fecha inválida", "/api/movements/in", `{"sku":"A1","quantity":1,"date":"01/02/2026"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	resp := do(t, app, http.MethodPost, "/api/movements/in", `{"sku":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"A1","quantity":1000000001}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_FallaParcialDevuelveMovementID(t *testing.T) {
	app, store := buildTestApp(t)
	store.Fail(memory.OpBalanceCAS, errors.New("conexión cerrada"), -1)

	resp := do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"P1","quantity":5}`)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "PARTIAL_FAILURE", body.Code)
	assert.NotEmpty(t, body.MovementID)

	store.ClearFaults()
	resp = do(t, app, http.MethodPost, "/api/balances/P1/repair", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(5), decode[dto.BalanceResponse](t, resp).CurrentStock)
}

func TestRouter_EliminarMovimiento(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"D1","quantity":5}`)
	mov := decode[dto.MovementResponse](t, resp)

	resp = do(t, app, http.MethodDelete, "/api/movements/"+mov.ID, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/movements/"+mov.ID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/movements/in", "")
	list := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	assert.Empty(t, list.Items)

	resp = do(t, app, http.MethodGet, "/api/balances/D1", "")
	assert.Equal(t, int64(0), decode[dto.BalanceResponse](t, resp).CurrentStock)
}

func TestRouter_EliminarFilaDeSaldo(t *testing.T) {
	app, store := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"E1","quantity":4}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/balances/E1", "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/balances/E1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/balances/E1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// El libro conserva el movimiento; la reparación reconstruye la fila.
	list, err := store.Movements().List(context.Background(), entity.DirectionIn)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	resp = do(t, app, http.MethodPost, "/api/balances/E1/repair", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(4), decode[dto.BalanceResponse](t, resp).CurrentStock)
}

func TestRouter_ListadoConFiltros(t *testing.T) {
	app, _ := buildTestApp(t)
	do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"A1","name":"Camiseta","color":"Rojo","quantity":1}`)
	do(t, app, http.MethodPost, "/api/movements/in", `{"sku":"B2","name":"Pantalón","color":"Azul","quantity":1}`)

	resp := do(t, app, http.MethodGet, "/api/movements/in?color=ROJO", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A1", list.Items[0].SKU)
}

func TestRouter_CatalogoAltaDuplicadoYBaja(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/skus", `{"sku":"B2","name":"Gorra","quantity":4,"unit_price":"9.90"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/skus", `{"sku":"B2","quantity":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodGet, "/api/balances/B2", "")
	assert.Equal(t, int64(4), decode[dto.BalanceResponse](t, resp).CurrentStock)

	resp = do(t, app, http.MethodDelete, "/api/skus/B2", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/skus/B2", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/skus", "")
	assert.Empty(t, decode[dto.ListResponse[dto.CatalogEntryResponse]](t, resp).Items)
}

func TestRouter_LecturasTolerantesAFallas(t *testing.T) {
	app, store := buildTestApp(t)
	store.Fail(memory.OpBalanceList, errors.New("relation does not exist"), -1)
	store.Fail(memory.OpSummaryList, errors.New("relation does not exist"), -1)

	for _, path := range []string{"/api/balances", "/api/sales-summary"} {
		resp := do(t, app, http.MethodGet, path, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":[],"total":0}`, string(body), path)
	}

	resp := do(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stock_read_failures_total{projection="balances"} 1`)
}

func TestRouter_Exportaciones(t *testing.T) {
	app, _ := buildTestApp(t)
	do(t, app, http.MethodPost, "/api/skus", `{"sku":"A1","name":"Camiseta","quantity":3,"unit_price":"10"}`)

	resp := do(t, app, http.MethodGet, "/api/balances/export.xlsx", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "saldos_")

	resp = do(t, app, http.MethodGet, "/api/balances/export.pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	resp = do(t, app, http.MethodGet, "/api/sales-summary/export.xlsx", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
