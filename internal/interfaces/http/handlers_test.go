package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildCatalogApp arma las rutas del catálogo sobre una fábrica sin backend remoto:
// todas las sesiones trabajan contra el caché en memoria.
func buildCatalogApp(t *testing.T) *fiber.App {
	t.Helper()
	factory := catalog.NewFactory(catalog.Deps{Log: logger.Nop().Zerolog()})
	products := apphttp.NewProductHandler(usecase.NewProductUseCase(factory, pdf.NewShortlistGenerator()))
	groups := apphttp.NewGroupHandler(usecase.NewGroupUseCase(factory))
	configuration := apphttp.NewConfigurationHandler(usecase.NewConfigurationUseCase(factory))
	discounts := apphttp.NewDiscountHandler(usecase.NewDiscountUseCase(factory))

	app := fiber.New()
	app.Get("/health", apphttp.NewHealthHandler(factory).Check)
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	api.Get("/products", products.List)
	api.Post("/products", products.Create)
	api.Get("/products/shortlist", products.Shortlist)
	api.Get("/products/shortlist.pdf", products.ShortlistPDF)
	api.Put("/products/:id", products.Update)
	api.Patch("/products/:id/stock", products.AdjustStock)
	api.Post("/products/:id/missing", products.ToggleMissing)
	api.Delete("/products/:id", products.Delete)
	api.Get("/groups", groups.List)
	api.Post("/groups", groups.Create)
	api.Delete("/groups/:name", groups.Delete)
	api.Get("/configuration", configuration.Get)
	api.Put("/configuration", configuration.Update)
	priced := api.Group("/discounts", apphttp.RequireRole("admin", "mayorista_autorizado"))
	priced.Get("/", discounts.List)
	priced.Put("/:brand", discounts.Set)
	priced.Delete("/:brand", discounts.Delete)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func newProduct(name string, qty int) map[string]interface{} {
	return map[string]interface{}{
		"name":            name,
		"brand":           "acme",
		"code":            "C-" + name,
		"quantity":        qty,
		"wholesale_price": 1500.5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductHandler_CreateOcultaPrecioSegunRol(t *testing.T) {
	app := buildCatalogApp(t)

	resp, raw := call(t, app, http.MethodPost, "/api/products", "solicitante", newProduct("tornillo", 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, "Tornillo", body["name"], "el nombre se capitaliza")
	assert.Equal(t, "Acme", body["brand"])
	assert.Equal(t, true, body["local"], "sin backend el producto queda con ID local")
	assert.NotContains(t, body, "wholesale_price", "solicitante no ve el precio mayorista")

	resp, raw = call(t, app, http.MethodGet, "/api/products", "mayorista_autorizado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, raw)
	assert.EqualValues(t, 1, list["total"])
	item := list["items"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, item, "wholesale_price", "mayorista autorizado ve el precio")
}

func TestProductHandler_CreatePrecioCero_Retorna422(t *testing.T) {
	app := buildCatalogApp(t)
	in := newProduct("tuerca", 1)
	in["wholesale_price"] = 0

	resp, raw := call(t, app, http.MethodPost, "/api/products", "admin", in)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := decode(t, raw)["fields"].(map[string]interface{})
	assert.Equal(t, "gt", fields["wholesale_price"])
}

func TestProductHandler_SinToken_Retorna401(t *testing.T) {
	app := buildCatalogApp(t)
	resp, _ := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductHandler_FiltroStockBajo(t *testing.T) {
	app := buildCatalogApp(t)
	for name, qty := range map[string]int{"alto": 50, "bajo": 3, "agotado": 0} {
		resp, raw := call(t, app, http.MethodPost, "/api/products", "admin", newProduct(name, qty))
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	_, raw := call(t, app, http.MethodGet, "/api/products?stock=bajo", "admin", nil)
	list := decode(t, raw)
	require.EqualValues(t, 1, list["total"])
	assert.Equal(t, "Bajo", list["items"].([]interface{})[0].(map[string]interface{})["name"])

	_, raw = call(t, app, http.MethodGet, "/api/products?stock=sin", "admin", nil)
	assert.EqualValues(t, 1, decode(t, raw)["total"])

	resp, _ := call(t, app, http.MethodGet, "/api/products?stock=mucho", "admin", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProductHandler_UpdateInexistente_Retorna404(t *testing.T) {
	app := buildCatalogApp(t)
	resp, raw := call(t, app, http.MethodPut, "/api/products/local-no-existe", "admin", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestProductHandler_StockNoBajaDeCero(t *testing.T) {
	app := buildCatalogApp(t)
	_, raw := call(t, app, http.MethodPost, "/api/products", "admin", newProduct("clavo", 2))
	id := decode(t, raw)["id"].(string)

	resp, raw := call(t, app, http.MethodPatch, "/api/products/"+id+"/stock", "admin", map[string]int{"delta": -5})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.EqualValues(t, 0, decode(t, raw)["quantity"])
}

func TestProductHandler_ShortlistYPDF(t *testing.T) {
	app := buildCatalogApp(t)
	_, raw := call(t, app, http.MethodPost, "/api/products", "admin", newProduct("lleno", 40))
	id := decode(t, raw)["id"].(string)
	call(t, app, http.MethodPost, "/api/products", "admin", newProduct("escaso", 1))

	resp, _ := call(t, app, http.MethodPost, "/api/products/"+id+"/missing", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw = call(t, app, http.MethodGet, "/api/products/shortlist", "admin", nil)
	assert.EqualValues(t, 2, decode(t, raw)["total"], "faltante marcado + stock bajo el mínimo")

	resp, raw = call(t, app, http.MethodGet, "/api/products/shortlist.pdf", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestProductHandler_Delete(t *testing.T) {
	app := buildCatalogApp(t)
	_, raw := call(t, app, http.MethodPost, "/api/products", "admin", newProduct("borrar", 1))
	id := decode(t, raw)["id"].(string)

	resp, _ := call(t, app, http.MethodDelete, "/api/products/"+id, "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, raw = call(t, app, http.MethodGet, "/api/products?visibility=todos", "admin", nil)
	assert.EqualValues(t, 0, decode(t, raw)["total"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Grupos y configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupHandler_CrearDuplicadoYReservado(t *testing.T) {
	app := buildCatalogApp(t)

	resp, raw := call(t, app, http.MethodPost, "/api/groups", "admin", map[string]string{"name": "ofertas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, "Ofertas", decode(t, raw)["name"])

	resp, raw = call(t, app, http.MethodPost, "/api/groups", "admin", map[string]string{"name": "Ofertas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "GROUP_EXISTS")

	resp, raw = call(t, app, http.MethodPost, "/api/groups", "admin", map[string]string{"name": "Sin grupo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "RESERVED_GROUP")

	_, raw = call(t, app, http.MethodGet, "/api/groups", "admin", nil)
	items := decode(t, raw)["items"].([]interface{})
	assert.Equal(t, []interface{}{"Sin grupo", "Ofertas"}, items)
}

func TestGroupHandler_EliminarReservado_Retorna400(t *testing.T) {
	app := buildCatalogApp(t)
	resp, raw := call(t, app, http.MethodDelete, "/api/groups/Sin%20grupo", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "RESERVED_GROUP")
}

func TestConfigurationHandler_DefaultsYUpdate(t *testing.T) {
	app := buildCatalogApp(t)

	resp, raw := call(t, app, http.MethodGet, "/api/configuration", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, decode(t, raw)["min_stock_threshold"])

	resp, raw = call(t, app, http.MethodPut, "/api/configuration", "admin", map[string]interface{}{"min_stock_threshold": 8})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.EqualValues(t, 8, decode(t, raw)["min_stock_threshold"])

	resp, _ = call(t, app, http.MethodPut, "/api/configuration", "admin", map[string]interface{}{"min_stock_threshold": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuentos por marca
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscountHandler_DescuentoSeVeEnElListado(t *testing.T) {
	app := buildCatalogApp(t)
	resp, raw := call(t, app, http.MethodPost, "/api/products", "admin", newProduct("tornillo", 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPut, "/api/discounts/acme", "admin", map[string]interface{}{"percent": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.EqualValues(t, 10, decode(t, raw)["items"].(map[string]interface{})["Acme"])

	resp, raw = call(t, app, http.MethodGet, "/api/products", "mayorista_autorizado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decode(t, raw)["items"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 10, item["discount"])
	assert.Equal(t, "1350.45", item["discounted_price"])

	resp, raw = call(t, app, http.MethodGet, "/api/products", "solicitante", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item = decode(t, raw)["items"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, item, "discounted_price")

	resp, _ = call(t, app, http.MethodDelete, "/api/discounts/Acme", "admin", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, raw = call(t, app, http.MethodGet, "/api/discounts", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, raw)["items"])
}

func TestDiscountHandler_ValidacionYRol(t *testing.T) {
	app := buildCatalogApp(t)

	resp, raw := call(t, app, http.MethodPut, "/api/discounts/acme", "admin", map[string]interface{}{"percent": 120})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "max", decode(t, raw)["fields"].(map[string]interface{})["percent"])

	resp, _ = call(t, app, http.MethodGet, "/api/discounts", "solicitante", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealthHandler(t *testing.T) {
	app := buildCatalogApp(t)
	resp, raw := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "closed", body["breaker"])
	assert.Equal(t, false, body["cache_degraded"])
}
