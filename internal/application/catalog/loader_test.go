package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func seedLegacy(t *testing.T, store catalog.LocalStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "articulos_"+testUID, []byte(`[
		{"id":"1","nombre":"Goma","marca":"Pelikan","codigo":"G1","cantidad":2,"precio_mayorista":10},
		{"id":"2","nombre":"Lápiz","marca":"Faber","codigo":"L1","cantidad":-4,"precio_mayorista":"3.5"},
		{"id":"3","nombre":"Roto","marca":"X","codigo":"R1","cantidad":1,"precio_mayorista":-1}
	]`)))
	require.NoError(t, store.Set(ctx, "grupos_"+testUID, []byte(`["Sin grupo","Librería","Escolar"]`)))
	require.NoError(t, store.Set(ctx, "stockMinimo_"+testUID, []byte("3")))
	require.NoError(t, store.Set(ctx, "descuentosPorMarca_"+testUID, []byte(`{"Pelikan":10,"Faber":0}`)))
}

type loaderHarness struct {
	backend *fakeBackend
	store   *catalog.MemoryStore
	loader  *catalog.Loader
}

func newLoaderHarness(t *testing.T) *loaderHarness {
	t.Helper()
	b := newFakeBackend()
	store := catalog.NewMemoryStore()
	seedLegacy(t, store)
	products, groups, configs := b.repos()
	cache := newCache(store)
	f := catalog.NewFactory(catalog.Deps{
		Products:       products,
		Groups:         groups,
		Configurations: configs,
		Discounts:      b.discounts(),
		Cache:          cache,
		RemoteEnabled:  true,
		Log:            zerolog.Nop(),
	})
	return &loaderHarness{
		backend: b,
		store:   store,
		loader:  catalog.NewLoader(f, catalog.NewMigrator(cache, zerolog.Nop()), zerolog.Nop()),
	}
}

var session = catalog.Session{UserID: testUID, Email: "ana@example.com"}

// ──────────────────────────────────────────────────────────────────────────────
// Migración
// ──────────────────────────────────────────────────────────────────────────────

func TestLoader_MigratesLegacyDataOnEmptyRemote(t *testing.T) {
	h := newLoaderHarness(t)

	data, err := h.loader.Load(context.Background(), session)
	require.NoError(t, err)
	require.NotNil(t, data.Migration)

	assert.Equal(t, 2, data.Migration.Products)
	assert.Equal(t, 1, data.Migration.ProductsSkipped, "precio negativo se omite y la migración sigue")
	assert.Equal(t, 2, data.Migration.Groups)
	assert.True(t, data.Migration.Configuration)

	require.Len(t, data.Products, 2)
	assert.Equal(t, "Faber", data.Products[0].Brand)
	assert.Equal(t, 0, data.Products[0].Quantity)
	for _, p := range data.Products {
		assert.False(t, p.IsLocal())
	}
	assert.Equal(t, []string{entity.DefaultGroup, "Escolar", "Librería"}, data.Groups)
	assert.Equal(t, 3, data.Configuration.MinStockThreshold)
	assert.Equal(t, 1, data.Migration.Discounts, "un descuento en 0 no se migra")
	assert.Equal(t, entity.BrandDiscounts{"Pelikan": 10}, data.Discounts)
	assert.True(t, data.Remote)
}

func TestLoader_MigrationKeepsLegacyKeysAndMirrorsRemote(t *testing.T) {
	h := newLoaderHarness(t)
	ctx := context.Background()

	data, err := h.loader.Load(ctx, session)
	require.NoError(t, err)
	require.NotNil(t, data.Migration)

	for _, key := range []string{"articulos_", "grupos_", "stockMinimo_", "descuentosPorMarca_"} {
		_, ok, err := h.store.Get(ctx, key+testUID)
		require.NoError(t, err)
		assert.True(t, ok, "la clave heredada %s se conserva", key)
	}

	snapshot := newCache(h.store).ReadProducts(ctx, testUID)
	require.Len(t, snapshot, 2, "el snapshot refleja la lista remota posterior a la migración")
	assert.Equal(t, ids(data.Products), ids(snapshot))
	for _, p := range snapshot {
		assert.False(t, p.IsLocal())
	}
}

func TestLoader_SecondLoadDoesNotMigrateAgain(t *testing.T) {
	h := newLoaderHarness(t)
	ctx := context.Background()

	_, err := h.loader.Load(ctx, session)
	require.NoError(t, err)
	data, err := h.loader.Load(ctx, session)
	require.NoError(t, err)

	assert.Nil(t, data.Migration)
	assert.Equal(t, 2, h.backend.productCount(testUID))
}

func TestLoader_ConcurrentLoadsMigrateAtMostOnce(t *testing.T) {
	h := newLoaderHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.loader.Load(context.Background(), session)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, h.backend.productCount(testUID))
}

func TestLoader_NoMigrationWhenRemoteUnavailable(t *testing.T) {
	h := newLoaderHarness(t)
	h.backend.setDown(errBackendDown)

	data, err := h.loader.Load(context.Background(), session)
	require.NoError(t, err)

	assert.Nil(t, data.Migration)
	assert.False(t, data.Remote)
	assert.Empty(t, data.Products)
	assert.Equal(t, []string{entity.DefaultGroup}, data.Groups)
}

func TestLoader_NoMigrationWithoutLegacyData(t *testing.T) {
	b := newFakeBackend()
	products, groups, configs := b.repos()
	cache := newCache(nil)
	f := catalog.NewFactory(catalog.Deps{
		Products: products, Groups: groups, Configurations: configs,
		Cache: cache, RemoteEnabled: true, Log: zerolog.Nop(),
	})
	loader := catalog.NewLoader(f, catalog.NewMigrator(cache, zerolog.Nop()), zerolog.Nop())

	data, err := loader.Load(context.Background(), session)
	require.NoError(t, err)
	assert.Nil(t, data.Migration)
	assert.Equal(t, entity.DefaultMinStock, data.Configuration.MinStockThreshold)
}

func TestLoader_NotifiesObservers(t *testing.T) {
	h := newLoaderHarness(t)
	var got []*catalog.SessionData
	h.loader.Register(catalog.ObserverFunc(func(_ context.Context, s catalog.Session, data *catalog.SessionData) {
		assert.Equal(t, testUID, s.UserID)
		got = append(got, data)
	}))

	_, err := h.loader.Load(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Migration)
}
