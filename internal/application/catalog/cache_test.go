package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

const testUID = "00000000-0000-0000-0000-0000000000aa"

func newCache(store catalog.LocalStore) *catalog.SnapshotCache {
	return catalog.NewSnapshotCache(store, zerolog.Nop())
}

func sampleProduct(name, brand, code string, qty int) *entity.Product {
	return &entity.Product{
		Name:           name,
		Brand:          brand,
		Code:           code,
		Quantity:       qty,
		Visible:        true,
		WholesalePrice: decimal.RequireFromString("12.50"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas con valores por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshotCache_EmptyStoreReturnsDefaults(t *testing.T) {
	ctx := context.Background()
	c := newCache(catalog.NewMemoryStore())

	products := c.ReadProducts(ctx, testUID)
	require.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, []string{entity.DefaultGroup}, c.ReadGroups(ctx, testUID))

	cfg := c.ReadConfiguration(ctx, testUID)
	assert.Equal(t, entity.DefaultMinStock, cfg.MinStockThreshold)
	for _, f := range entity.LoadFormFields {
		assert.True(t, cfg.FieldEnabled(f), "campo %s habilitado por defecto", f)
	}
}

func TestSnapshotCache_CorruptSnapshotFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.Set(ctx, catalog.SnapshotKey(catalog.KindProducts, testUID), []byte("{no es json")))
	c := newCache(store)

	assert.Empty(t, c.ReadProducts(ctx, testUID))
}

func TestSnapshotCache_ReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c := newCache(catalog.NewMemoryStore())
	p := sampleProduct("Lapicera", "Bic", "A1", 3)
	p.ID = "10"
	c.WriteProducts(ctx, testUID, []*entity.Product{p})

	first := c.ReadProducts(ctx, testUID)
	second := c.ReadProducts(ctx, testUID)
	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "Lapicera", first[0].Name)
	assert.True(t, first[0].WholesalePrice.Equal(decimal.RequireFromString("12.5")))
}

func TestSnapshotCache_SnapshotFormatUsesBackendFieldNames(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	c := newCache(store)
	p := sampleProduct("Cuaderno", "Rivadavia", "C9", 2)
	p.ID = "7"
	c.WriteProducts(ctx, testUID, []*entity.Product{p})

	raw, ok, err := store.Get(ctx, "productos_backup_"+testUID)
	require.NoError(t, err)
	require.True(t, ok)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	for _, key := range []string{"id", "nombre", "marca", "codigo", "cantidad", "grupo", "foto", "faltante", "visible", "precio_mayorista"} {
		assert.Contains(t, rows[0], key)
	}
	assert.Nil(t, rows[0]["grupo"], "grupo vacío se guarda como null")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones locales
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshotCache_AppendLocalProductTagsIDs(t *testing.T) {
	ctx := context.Background()
	c := newCache(nil)

	a := c.AppendLocalProduct(ctx, testUID, sampleProduct("A", "X", "1", 1))
	b := c.AppendLocalProduct(ctx, testUID, sampleProduct("B", "X", "2", 1))

	assert.True(t, a.IsLocal())
	assert.True(t, b.IsLocal())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, testUID, a.UserID)

	list := c.ReadProducts(ctx, testUID)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID, "se agrega al final")
	assert.Equal(t, b.ID, list[1].ID)
}

func TestSnapshotCache_UpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	c := newCache(nil)
	p := sampleProduct("A", "X", "1", 1)
	p.ID = "1"
	c.UpsertProduct(ctx, testUID, p)

	changed := *p
	changed.Quantity = 9
	c.UpsertProduct(ctx, testUID, &changed)

	list := c.ReadProducts(ctx, testUID)
	require.Len(t, list, 1)
	assert.Equal(t, 9, list[0].Quantity)
}

func TestSnapshotCache_UpdateLocalProductMissingID(t *testing.T) {
	c := newCache(nil)
	qty := 4
	_, err := c.UpdateLocalProduct(context.Background(), testUID, "no-existe", entity.ProductPatch{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotCache_EvictMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	c := newCache(nil)
	p := sampleProduct("A", "X", "1", 1)
	p.ID = "1"
	c.WriteProducts(ctx, testUID, []*entity.Product{p})

	c.EvictProduct(ctx, testUID, "2")
	assert.Len(t, c.ReadProducts(ctx, testUID), 1)
	c.EvictProduct(ctx, testUID, "1")
	assert.Empty(t, c.ReadProducts(ctx, testUID))
}

func TestSnapshotCache_GroupsKeepDefaultFirst(t *testing.T) {
	ctx := context.Background()
	c := newCache(nil)

	c.WriteGroups(ctx, testUID, []string{"Librería", entity.DefaultGroup, "Almacén"})
	assert.Equal(t, []string{entity.DefaultGroup, "Librería", "Almacén"}, c.ReadGroups(ctx, testUID))

	c.AddGroup(ctx, testUID, "Almacén")
	c.RemoveGroup(ctx, testUID, entity.DefaultGroup)
	c.RemoveGroup(ctx, testUID, "Librería")
	assert.Equal(t, []string{entity.DefaultGroup, "Almacén"}, c.ReadGroups(ctx, testUID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Degradación y datos heredados
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshotCache_DegradesToMemoryWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	c := newCache(failingStore{})

	p := sampleProduct("A", "X", "1", 1)
	p.ID = "1"
	c.WriteProducts(ctx, testUID, []*entity.Product{p})

	assert.True(t, c.Degraded())
	list := c.ReadProducts(ctx, testUID)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
}

func TestSnapshotCache_LegacyData(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "articulos_"+testUID, []byte(`[{"id":"1700000000000","nombre":"Goma","marca":"Staedtler","codigo":"G1","cantidad":4,"grupo":"Librería","foto":null,"faltante":true}]`)))
	require.NoError(t, store.Set(ctx, "grupos_"+testUID, []byte(`["Sin grupo","Librería"]`)))
	require.NoError(t, store.Set(ctx, "stockMinimo_"+testUID, []byte("10")))
	require.NoError(t, store.Set(ctx, "configuracionCarga_"+testUID, []byte(`{"foto":false}`)))
	c := newCache(store)

	assert.True(t, c.HasLegacyData(ctx, testUID))
	assert.False(t, c.HasLegacyData(ctx, "otro-usuario"))

	products := c.ReadLegacyProducts(ctx, testUID)
	require.Len(t, products, 1)
	assert.Equal(t, "Goma", products[0].Name)
	assert.Equal(t, "Librería", products[0].Group)
	assert.True(t, products[0].Missing)
	assert.True(t, products[0].Visible, "visible ausente cuenta como visible")

	assert.Equal(t, []string{"Sin grupo", "Librería"}, c.ReadLegacyGroups(ctx, testUID))

	cfg, found := c.ReadLegacyConfiguration(ctx, testUID)
	require.True(t, found)
	assert.Equal(t, 10, cfg.MinStockThreshold)
	assert.False(t, cfg.FieldEnabled(entity.FieldPhoto))
	assert.True(t, cfg.FieldEnabled(entity.FieldName))
}

func TestSnapshotCache_LegacyZeroThresholdUsesDefault(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "stockMinimo_"+testUID, []byte("0")))
	c := newCache(store)

	cfg, found := c.ReadLegacyConfiguration(ctx, testUID)
	assert.True(t, found)
	assert.Equal(t, entity.DefaultMinStock, cfg.MinStockThreshold)
}

func TestSnapshotCache_Discounts(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	c := newCache(store)

	assert.Empty(t, c.ReadDiscounts(ctx, testUID))

	c.SetDiscount(ctx, testUID, "Bic", 15)
	c.SetDiscount(ctx, testUID, "Faber", 5)
	c.RemoveDiscount(ctx, testUID, "Faber")
	c.RemoveDiscount(ctx, testUID, "Inexistente")

	assert.Equal(t, entity.BrandDiscounts{"Bic": 15}, c.ReadDiscounts(ctx, testUID))
	raw, ok, err := store.Get(ctx, "descuentos_backup_"+testUID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"Bic":15}`, string(raw))
}

func TestSnapshotCache_LegacyDiscounts(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "descuentosPorMarca_"+testUID,
		[]byte(`{"Pelikan":10," Bic ":"20","Faber":150,"Acme":-3,"":5}`)))
	c := newCache(store)

	assert.True(t, c.HasLegacyData(ctx, testUID), "sólo descuentos también cuenta como dato heredado")
	assert.Equal(t, entity.BrandDiscounts{"Pelikan": 10, "Bic": 20}, c.ReadLegacyDiscounts(ctx, testUID))
}
