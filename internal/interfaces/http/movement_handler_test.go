package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	apiProductID  = "11111111-1111-1111-1111-111111111111"
	apiProduct2ID = "55555555-5555-5555-5555-555555555555"
	apiStoreID    = "22222222-2222-2222-2222-222222222222"
	apiStore2ID   = "33333333-3333-3333-3333-333333333333"
	apiUserID     = "44444444-4444-4444-4444-444444444444"
)

type apiFixture struct {
	app   *fiber.App
	token string
}

// newAPIFixture construye la API completa sobre repositorios en memoria,
// con un producto, dos almacenes y un usuario bodeguero sembrados.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	products := memory.NewProductRepository()
	stores := memory.NewStoreRepository()
	users := memory.NewUserRepository()
	movements := memory.NewMovementRepository()
	stockLevels := memory.NewStockLevelRepository()
	transfers := memory.NewTransferRepository()
	replenishments := memory.NewReplenishmentRepository()
	txRunner := memory.NewTxRunner(movements, stockLevels, transfers)

	threshold := int64(10)
	require.NoError(t, products.Create(&entity.Product{
		ID:                apiProductID,
		Name:              "Tornillo M8",
		Category:          "ferretería",
		CriticalThreshold: &threshold,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}))
	require.NoError(t, products.Create(&entity.Product{
		ID:       apiProduct2ID,
		Name:     "Tuerca M8",
		Category: "ferretería",
	}))
	require.NoError(t, stores.Create(&entity.Store{ID: apiStoreID, Name: "Bodega Central", Location: "Madrid"}))
	require.NoError(t, stores.Create(&entity.Store{ID: apiStore2ID, Name: "Bodega Norte", Location: "Bilbao"}))
	require.NoError(t, users.Create(&entity.User{
		ID:     apiUserID,
		Email:  "bodeguero@almacen.local",
		Name:   "Bodeguero de Test",
		Role:   entity.RoleBodeguero,
		Status: "active",
	}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:       usecase.NewProductUseCase(products, movements, replenishments),
		StoreUC:         usecase.NewStoreUseCase(stores, movements, replenishments),
		LedgerUC:        inventory.NewLedgerUseCase(txRunner, movements, products, stores, users, transfers, nil),
		TransferUC:      inventory.NewTransferUseCase(movements, transfers),
		StockUC:         inventory.NewStockQueryUseCase(movements, products),
		ReplenishmentUC: usecase.NewReplenishmentUseCase(replenishments, products, stores),
		UserUC:          usecase.NewUserUseCase(users),
		AuthUC:          auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret:       testJWTSecret,
	})

	tok, err := pkgjwt.Generate(testJWTSecret, apiUserID, entity.RoleBodeguero, testIssuer, testExpMin)
	require.NoError(t, err)

	return &apiFixture{app: app, token: "Bearer " + tok}
}

// do lanza una petición JSON autenticada contra la API de test.
func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode deserializa el body JSON de la respuesta en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerMovement registra un movimiento y devuelve la respuesta HTTP.
func (f *apiFixture) registerMovement(t *testing.T, kind string, qty int64) *http.Response {
	t.Helper()
	return f.do(t, http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		Kind:      kind,
		ProductID: apiProductID,
		StoreID:   apiStoreID,
		Quantity:  qty,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementAPI_RegistrarEntrada(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.registerMovement(t, "in", 50)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "la entrada debe aceptarse")

	var mov dto.MovementResponse
	decode(t, resp, &mov)
	assert.NotEmpty(t, mov.ID, "el movimiento debe tener ID asignado")
	assert.Equal(t, "in", mov.Kind)
	assert.Equal(t, int64(50), mov.Quantity)
	assert.Equal(t, apiUserID, mov.UserID, "el user_id sale del token, no del body")
}

func TestMovementAPI_SalidaSinStockDevuelve422(t *testing.T) {
	f := newAPIFixture(t)

	// Entrada de 50 y salida válida de 30 dejan 20 disponibles.
	f.registerMovement(t, "in", 50).Body.Close()
	f.registerMovement(t, "out", 30).Body.Close()

	resp := f.registerMovement(t, "out", 25)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode,
		"una salida que dejaría stock negativo debe rechazarse")

	var errBody struct {
		Code    string                       `json:"code"`
		Message string                       `json:"message"`
		Details dto.InsufficientStockDetails `json:"details"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Equal(t, int64(20), errBody.Details.Available, "el detalle reporta el stock disponible")
	assert.Equal(t, int64(25), errBody.Details.Requested, "el detalle reporta la cantidad solicitada")
}

func TestMovementAPI_BodyInvalidoDevuelve422(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		Kind:      "ajuste", // kind desconocido
		ProductID: apiProductID,
		StoreID:   apiStoreID,
		Quantity:  5,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMovementAPI_SinTokenDevuelve401(t *testing.T) {
	f := newAPIFixture(t)

	raw, _ := json.Marshal(dto.RegisterMovementRequest{
		Kind: "in", ProductID: apiProductID, StoreID: apiStoreID, Quantity: 5,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GET /api/stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockAPI_ProyeccionDelLedger(t *testing.T) {
	f := newAPIFixture(t)

	f.registerMovement(t, "in", 50).Body.Close()
	f.registerMovement(t, "out", 30).Body.Close()
	f.registerMovement(t, "in", 10).Body.Close()

	resp := f.do(t, http.MethodGet, "/api/stock?product_id="+apiProductID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stock dto.StockListResponse
	decode(t, resp, &stock)
	require.Len(t, stock.Items, 1, "solo existe una partición con movimientos")
	assert.Equal(t, apiProductID, stock.Items[0].ProductID)
	assert.Equal(t, apiStoreID, stock.Items[0].StoreID)
	assert.Equal(t, int64(30), stock.Items[0].Quantity, "50 - 30 + 10 = 30")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/transfers
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferAPI_PatasDesparejadasDevuelve422(t *testing.T) {
	f := newAPIFixture(t)

	// Stock inicial para poder sacar.
	f.registerMovement(t, "in", 50).Body.Close()

	var outLeg dto.MovementResponse
	decode(t, f.registerMovement(t, "out", 10), &outLeg)

	// Pata de entrada en el otro almacén con cantidad distinta.
	var inLeg dto.MovementResponse
	decode(t, f.do(t, http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		Kind:      "in",
		ProductID: apiProductID,
		StoreID:   apiStore2ID,
		Quantity:  12,
	}), &inLeg)

	resp := f.do(t, http.MethodPost, "/api/transfers", dto.CreateTransferRequest{
		OutMovementID: outLeg.ID,
		InMovementID:  inLeg.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode,
		"patas con cantidades distintas no forman un transfer")

	var errBody struct {
		Code    string                    `json:"code"`
		Details dto.MismatchedLegsDetails `json:"details"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "MISMATCHED_LEGS", errBody.Code)
	assert.Equal(t, int64(10), errBody.Details.OutQuantity)
	assert.Equal(t, int64(12), errBody.Details.InQuantity)
}

func TestTransferAPI_ProductosDistintosDevuelve422(t *testing.T) {
	f := newAPIFixture(t)

	f.registerMovement(t, "in", 50).Body.Close()

	var outLeg dto.MovementResponse
	decode(t, f.registerMovement(t, "out", 10), &outLeg)

	// Pata de entrada de otro producto con la misma cantidad.
	var inLeg dto.MovementResponse
	decode(t, f.do(t, http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		Kind:      "in",
		ProductID: apiProduct2ID,
		StoreID:   apiStore2ID,
		Quantity:  10,
	}), &inLeg)

	resp := f.do(t, http.MethodPost, "/api/transfers", dto.CreateTransferRequest{
		OutMovementID: outLeg.ID,
		InMovementID:  inLeg.ID,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode,
		"patas de productos distintos no forman un transfer")

	var errBody struct {
		Code    string                    `json:"code"`
		Details dto.MismatchedLegsDetails `json:"details"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "MISMATCHED_LEGS", errBody.Code)
	assert.Equal(t, apiProductID, errBody.Details.OutProductID)
	assert.Equal(t, apiProduct2ID, errBody.Details.InProductID)
}

func TestTransferAPI_PatasEquivalentesAceptadas(t *testing.T) {
	f := newAPIFixture(t)

	f.registerMovement(t, "in", 50).Body.Close()

	var outLeg dto.MovementResponse
	decode(t, f.registerMovement(t, "out", 10), &outLeg)

	var inLeg dto.MovementResponse
	decode(t, f.do(t, http.MethodPost, "/api/movements", dto.RegisterMovementRequest{
		Kind:      "in",
		ProductID: apiProductID,
		StoreID:   apiStore2ID,
		Quantity:  10,
	}), &inLeg)

	resp := f.do(t, http.MethodPost, "/api/transfers", dto.CreateTransferRequest{
		OutMovementID: outLeg.ID,
		InMovementID:  inLeg.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var tr dto.TransferResponse
	decode(t, resp, &tr)
	assert.Equal(t, outLeg.ID, tr.OutMovementID)
	assert.Equal(t, inLeg.ID, tr.InMovementID)

	// Las patas emparejadas quedan protegidas contra el borrado.
	del := f.do(t, http.MethodDelete, "/api/movements/"+outLeg.ID, nil)
	defer del.Body.Close()
	assert.Equal(t, http.StatusForbidden, del.StatusCode,
		"borrar movimientos requiere rol admin")
}
