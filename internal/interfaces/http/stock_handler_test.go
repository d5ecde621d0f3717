package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-api/internal/interfaces/http"
)

type brokenReceipts struct{}

func (brokenReceipts) ListReceipts(context.Context, repository.MovementFilter) ([]entity.MovementRecord, error) {
	return nil, errors.New("timeout de red")
}

func seedLedger() *memory.Ledger {
	l := memory.NewLedger()
	l.AddProduct(entity.Product{ID: 7, Name: "Camiseta básica"})
	l.AddColor(entity.Color{ID: 1, Name: "Negro"})
	l.AddColor(entity.Color{ID: 2, Name: "Blanco"})
	l.AddReceipt(
		entity.MovementRecord{ProductID: 7, SizeCode: "S", ColorID: 1, Qty: 3},
		entity.MovementRecord{ProductID: 7, SizeCode: "M", ColorID: 1, Qty: 5},
		entity.MovementRecord{ProductID: 7, SizeCode: "M", ColorID: 2, Qty: 2},
	)
	l.AddRealization(entity.MovementRecord{ProductID: 7, SizeCode: "M", ColorID: 1, Qty: 1})
	return l
}

// buildStockApp arma la app con el router real sobre libros en memoria.
func buildStockApp(receipts repository.ReceiptRepository, l *memory.Ledger, policy inventory.FailurePolicy) *fiber.App {
	agg := inventory.NewStockAggregator(receipts, l, nil,
		inventory.AggregatorConfig{ReadMode: inventory.ReadParallel, FailurePolicy: policy}, zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Aggregator: agg,
		Checker:    inventory.NewAvailabilityChecker(agg, l, zerolog.Nop()),
		Reporter:   inventory.NewWarehouseReporter(agg, policy, zerolog.Nop()),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func doPost(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGetStock(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)

	resp := doGet(t, app, "/api/stock/products/7", bearer(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	body := decode[dto.StockSnapshotResponse](t, resp)
	assert.Equal(t, int64(9), body.TotalQuantity)
	assert.Equal(t, []dto.StockEntryResponse{
		{SizeCode: "S", ColorID: 1, Qty: 3},
		{SizeCode: "M", ColorID: 1, Qty: 4},
		{SizeCode: "M", ColorID: 2, Qty: 2},
	}, body.Entries)
}

func TestGetStock_FiltroYNombres(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)

	resp := doGet(t, app, "/api/stock/products/7?size=M&names=true", bearer(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.StockSnapshotResponse](t, resp)
	assert.Equal(t, "M", body.SizeCode)
	assert.Equal(t, int64(6), body.TotalQuantity)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, "Negro", body.Entries[0].ColorName)
}

func TestGetStock_RequiereToken(t *testing.T) {
	l := seedLedger()
	resp := doGet(t, buildStockApp(l, l, inventory.FailEmpty), "/api/stock/products/7", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetStock_IDInvalido(t *testing.T) {
	l := seedLedger()
	resp := doGet(t, buildStockApp(l, l, inventory.FailEmpty), "/api/stock/products/abc", bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, domain.ErrInvalidInput.Error())
}

// Política "empty": el fallo de BD se ve como 200 sin stock; "propagate": 503.
func TestGetStock_PoliticaDeFallo(t *testing.T) {
	l := seedLedger()

	resp := doGet(t, buildStockApp(brokenReceipts{}, l, inventory.FailEmpty), "/api/stock/products/7", bearer(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.StockSnapshotResponse](t, resp)
	assert.Zero(t, body.TotalQuantity)
	assert.Empty(t, body.Entries)

	resp2 := doGet(t, buildStockApp(brokenReceipts{}, l, inventory.FailPropagate), "/api/stock/products/7", bearer(t))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp2)
	assert.Equal(t, "STOCK_UNAVAILABLE", errBody.Code)
}

func TestGetSummaryYHasStock(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)

	resp := doGet(t, app, "/api/stock/products/7/summary", bearer(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.StockSnapshotResponse](t, resp)
	assert.Equal(t, int64(9), summary.TotalQuantity)
	assert.Equal(t, "Blanco", summary.Entries[2].ColorName)

	resp2 := doGet(t, app, "/api/stock/products/20/has-stock", bearer(t))
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	has := decode[dto.HasStockResponse](t, resp2)
	assert.False(t, has.HasStock)
	assert.Zero(t, has.TotalQuantity)
	assert.NotNil(t, has.Entries)
}

func TestCheckAvailability_Endpoint(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)
	color := int64(1)

	resp := doPost(t, app, "/api/stock/availability", dto.AvailabilityRequest{ProductID: 7, SizeCode: "S", ColorID: &color, Quantity: 5})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.AvailabilityResponse](t, resp)
	assert.False(t, body.Available)
	assert.Equal(t, int64(3), body.AvailableQty)
	assert.Equal(t, int64(5), body.RequestedQty)
	assert.Contains(t, body.Message, "Camiseta básica")
}

func TestCheckAvailability_Validacion(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)

	cases := map[string]dto.AvailabilityRequest{
		"sin producto":      {SizeCode: "S", Quantity: 1},
		"sin talla":         {ProductID: 7, Quantity: 1},
		"cantidad en cero":  {ProductID: 7, SizeCode: "S"},
		"cantidad negativa": {ProductID: 7, SizeCode: "S", Quantity: -2},
		"cantidad excesiva": {ProductID: 7, SizeCode: "S", Quantity: math.MaxInt64},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doPost(t, app, "/api/stock/availability", in)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestCheckBatch_Endpoint(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)
	black, white := int64(1), int64(2)

	resp := doPost(t, app, "/api/stock/availability/batch", dto.BatchAvailabilityRequest{Lines: []dto.AvailabilityRequest{
		{ProductID: 7, SizeCode: "M", ColorID: &black, Quantity: 2},
		{ProductID: 7, SizeCode: "M", ColorID: &white, Quantity: 2},
		{ProductID: 7, SizeCode: "M", ColorID: &black, Quantity: 2},
	}})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.BatchAvailabilityResponse](t, resp)
	assert.True(t, body.AllAvailable)
	require.Len(t, body.Lines, 2)
	assert.Equal(t, int64(4), body.Lines[0].RequestedQty)
	assert.Equal(t, int64(4), body.Lines[0].AvailableQty)

	empty := doPost(t, app, "/api/stock/availability/batch", dto.BatchAvailabilityRequest{})
	defer empty.Body.Close()
	assert.Equal(t, http.StatusBadRequest, empty.StatusCode)
}

func TestCheckBatch_CantidadesQueDesbordan(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)
	black := int64(1)

	resp := doPost(t, app, "/api/stock/availability/batch", dto.BatchAvailabilityRequest{Lines: []dto.AvailabilityRequest{
		{ProductID: 7, SizeCode: "S", ColorID: &black, Quantity: math.MaxInt64},
		{ProductID: 7, SizeCode: "S", ColorID: &black, Quantity: math.MaxInt64},
	}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "línea 1")
}

// Talla M tiene stock en dos colores: sin color_id no se elige ninguno.
func TestCheckAvailability_ColorAmbiguo(t *testing.T) {
	l := seedLedger()
	app := buildStockApp(l, l, inventory.FailEmpty)

	resp := doPost(t, app, "/api/stock/availability", dto.AvailabilityRequest{ProductID: 7, SizeCode: "M", Quantity: 1})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.AvailabilityResponse](t, resp)
	assert.False(t, body.Available)
	assert.Zero(t, body.AvailableQty)
	assert.Equal(t, domain.ErrAmbiguousColor.Error(), body.Message)
}

func TestGetStock_RealizacionesHuerfanas(t *testing.T) {
	l := seedLedger()
	l.AddRealization(
		entity.MovementRecord{ProductID: 7, SizeCode: "L", ColorID: 9, Qty: 2},
		entity.MovementRecord{ProductID: 7, SizeCode: "S", ColorID: 2, Qty: 1},
	)
	app := buildStockApp(l, l, inventory.FailEmpty)

	resp := doGet(t, app, "/api/stock/products/7", bearer(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.StockSnapshotResponse](t, resp)
	assert.Equal(t, 2, body.OrphanedRealizations)
	assert.Equal(t, int64(9), body.TotalQuantity, "las huérfanas no descuentan stock")
}
