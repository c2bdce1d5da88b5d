package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Tipos de snapshot. La clave en el store es "<tipo>_backup_<uid>".
const (
	KindProducts      = "productos"
	KindGroups        = "grupos"
	KindConfiguration = "configuracion"
	KindDiscounts     = "descuentos"
)

// SnapshotKey arma la clave del snapshot de un tipo para un usuario.
func SnapshotKey(kind, userID string) string {
	return kind + "_backup_" + userID
}

// Claves de la versión anterior, sólo local, de la aplicación.
func legacyProductsKey(userID string) string  { return "articulos_" + userID }
func legacyGroupsKey(userID string) string    { return "grupos_" + userID }
func legacyMinStockKey(userID string) string  { return "stockMinimo_" + userID }
func legacyLoadFormKey(userID string) string  { return "configuracionCarga_" + userID }
func legacyDiscountsKey(userID string) string { return "descuentosPorMarca_" + userID }

// SnapshotCache es el caché local por usuario: un snapshot completo por tipo de entidad.
// Las lecturas nunca fallan: un snapshot ausente o corrupto devuelve los valores por defecto.
// Si el LocalStore falla, se registra una vez y el resto del proceso trabaja en memoria.
type SnapshotCache struct {
	store    LocalStore
	memory   *MemoryStore
	degraded atomic.Bool
	// serializa los read-modify-write; los snapshots son last-write-wins
	mu    sync.Mutex
	log   zerolog.Logger
	newID func() string
}

// NewSnapshotCache crea el caché sobre store. Con store nil trabaja sólo en memoria.
func NewSnapshotCache(store LocalStore, log zerolog.Logger) *SnapshotCache {
	mem := NewMemoryStore()
	if store == nil {
		store = mem
	}
	return &SnapshotCache{
		store:  store,
		memory: mem,
		log:    log,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// Degraded indica si el caché perdió el LocalStore configurado y trabaja en memoria.
func (c *SnapshotCache) Degraded() bool {
	return c.degraded.Load()
}

// ── Productos ────────────────────────────────────────────────────────────────

// ReadProducts devuelve el snapshot de productos del usuario, o una lista vacía.
func (c *SnapshotCache) ReadProducts(ctx context.Context, userID string) []*entity.Product {
	return c.readProducts(ctx, SnapshotKey(KindProducts, userID), userID)
}

// WriteProducts reemplaza el snapshot completo.
func (c *SnapshotCache) WriteProducts(ctx context.Context, userID string, products []*entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeProducts(ctx, userID, products)
}

// AppendLocalProduct agrega un producto creado sin backend. Se le asigna un ID
// "local-<uuid v7>" (ordenado por tiempo, nunca colisiona con IDs del servidor).
func (c *SnapshotCache) AppendLocalProduct(ctx context.Context, userID string, product *entity.Product) *entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := *product
	p.ID = entity.LocalIDPrefix + c.newID()
	p.UserID = userID
	list := c.ReadProducts(ctx, userID)
	c.writeProducts(ctx, userID, append(list, &p))
	out := p
	return &out
}

// UpsertProduct reemplaza el producto con el mismo ID o lo agrega al final.
func (c *SnapshotCache) UpsertProduct(ctx context.Context, userID string, product *entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := *product
	list := c.ReadProducts(ctx, userID)
	for i, existing := range list {
		if existing.ID == p.ID {
			list[i] = &p
			c.writeProducts(ctx, userID, list)
			return
		}
	}
	c.writeProducts(ctx, userID, append(list, &p))
}

// UpdateLocalProduct aplica el patch sobre el producto del snapshot.
// Devuelve domain.ErrNotFound si el ID no está en el caché.
func (c *SnapshotCache) UpdateLocalProduct(ctx context.Context, userID, id string, patch entity.ProductPatch) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.ReadProducts(ctx, userID)
	for _, p := range list {
		if p.ID != id {
			continue
		}
		patch.Apply(p)
		c.writeProducts(ctx, userID, list)
		out := *p
		return &out, nil
	}
	return nil, fmt.Errorf("%w: producto %s no está en el caché local", domain.ErrNotFound, id)
}

// EvictProduct quita el producto del snapshot; un ID ausente no es error.
func (c *SnapshotCache) EvictProduct(ctx context.Context, userID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.ReadProducts(ctx, userID)
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return
	}
	c.writeProducts(ctx, userID, kept)
}

func (c *SnapshotCache) readProducts(ctx context.Context, key, userID string) []*entity.Product {
	var recs []productRecord
	if !c.decode(ctx, key, &recs) {
		return []*entity.Product{}
	}
	out := make([]*entity.Product, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toEntity(userID))
	}
	return out
}

func (c *SnapshotCache) writeProducts(ctx context.Context, userID string, products []*entity.Product) {
	recs := make([]productRecord, 0, len(products))
	for _, p := range products {
		recs = append(recs, toProductRecord(p))
	}
	c.encode(ctx, SnapshotKey(KindProducts, userID), recs)
}

// ── Grupos ───────────────────────────────────────────────────────────────────

// ReadGroups devuelve los nombres de grupo con el grupo por defecto siempre primero.
func (c *SnapshotCache) ReadGroups(ctx context.Context, userID string) []string {
	var names []string
	c.decode(ctx, SnapshotKey(KindGroups, userID), &names)
	return WithDefaultGroup(names)
}

// WriteGroups reemplaza el snapshot de grupos.
func (c *SnapshotCache) WriteGroups(ctx context.Context, userID string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encode(ctx, SnapshotKey(KindGroups, userID), WithDefaultGroup(names))
}

// HasGroup indica si el snapshot ya contiene el nombre.
func (c *SnapshotCache) HasGroup(ctx context.Context, userID, name string) bool {
	for _, g := range c.ReadGroups(ctx, userID) {
		if g == name {
			return true
		}
	}
	return false
}

// AddGroup agrega el grupo al snapshot si no existe.
func (c *SnapshotCache) AddGroup(ctx context.Context, userID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := c.ReadGroups(ctx, userID)
	for _, g := range names {
		if g == name {
			return
		}
	}
	c.encode(ctx, SnapshotKey(KindGroups, userID), append(names, name))
}

// RemoveGroup quita el grupo del snapshot. El grupo por defecto nunca se quita.
func (c *SnapshotCache) RemoveGroup(ctx context.Context, userID, name string) {
	if entity.IsReserved(name) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	names := c.ReadGroups(ctx, userID)
	kept := make([]string, 0, len(names))
	for _, g := range names {
		if g != name {
			kept = append(kept, g)
		}
	}
	c.encode(ctx, SnapshotKey(KindGroups, userID), kept)
}

// WithDefaultGroup devuelve names con el grupo por defecto primero, sin duplicados ni vacíos.
func WithDefaultGroup(names []string) []string {
	out := make([]string, 0, len(names)+1)
	out = append(out, entity.DefaultGroup)
	seen := map[string]bool{entity.DefaultGroup: true}
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ── Configuración ────────────────────────────────────────────────────────────

// ReadConfiguration devuelve la configuración guardada o la configuración por defecto.
func (c *SnapshotCache) ReadConfiguration(ctx context.Context, userID string) *entity.UserConfiguration {
	rec := configRecord{StockMinimo: entity.DefaultMinStock}
	c.decode(ctx, SnapshotKey(KindConfiguration, userID), &rec)
	return rec.toEntity(userID)
}

// WriteConfiguration reemplaza el snapshot de configuración.
func (c *SnapshotCache) WriteConfiguration(ctx context.Context, cfg *entity.UserConfiguration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encode(ctx, SnapshotKey(KindConfiguration, cfg.UserID), toConfigRecord(cfg))
}

// ── Descuentos por marca ─────────────────────────────────────────────────────

// ReadDiscounts devuelve los descuentos del usuario indexados por marca.
func (c *SnapshotCache) ReadDiscounts(ctx context.Context, userID string) entity.BrandDiscounts {
	return c.readDiscounts(ctx, SnapshotKey(KindDiscounts, userID))
}

// WriteDiscounts reemplaza el snapshot de descuentos.
func (c *SnapshotCache) WriteDiscounts(ctx context.Context, userID string, discounts entity.BrandDiscounts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encode(ctx, SnapshotKey(KindDiscounts, userID), discounts)
}

// SetDiscount guarda el porcentaje de la marca en el snapshot.
func (c *SnapshotCache) SetDiscount(ctx context.Context, userID, brand string, percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.ReadDiscounts(ctx, userID)
	d[brand] = percent
	c.encode(ctx, SnapshotKey(KindDiscounts, userID), d)
}

// RemoveDiscount quita la marca del snapshot; una marca ausente no es error.
func (c *SnapshotCache) RemoveDiscount(ctx context.Context, userID, brand string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.ReadDiscounts(ctx, userID)
	if _, ok := d[brand]; !ok {
		return
	}
	delete(d, brand)
	c.encode(ctx, SnapshotKey(KindDiscounts, userID), d)
}

// readDiscounts acepta porcentajes como número o como texto y descarta los que
// quedan fuera de 0..100.
func (c *SnapshotCache) readDiscounts(ctx context.Context, key string) entity.BrandDiscounts {
	var raw map[string]json.RawMessage
	out := entity.BrandDiscounts{}
	if !c.decode(ctx, key, &raw) {
		return out
	}
	for brand, v := range raw {
		brand = entity.NormalizeBrand(brand)
		n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(string(v)), "\""))
		if brand == "" || err != nil || n < 0 || n > entity.MaxDiscount {
			continue
		}
		out[brand] = n
	}
	return out
}

// ── Datos heredados ──────────────────────────────────────────────────────────

// ReadLegacyProducts lee "articulos_<uid>" de la versión sólo local.
func (c *SnapshotCache) ReadLegacyProducts(ctx context.Context, userID string) []*entity.Product {
	return c.readProducts(ctx, legacyProductsKey(userID), userID)
}

// ReadLegacyGroups lee "grupos_<uid>".
func (c *SnapshotCache) ReadLegacyGroups(ctx context.Context, userID string) []string {
	var names []string
	c.decode(ctx, legacyGroupsKey(userID), &names)
	return names
}

// ReadLegacyConfiguration lee "stockMinimo_<uid>" y "configuracionCarga_<uid>".
// found es false si no existe ninguna de las dos claves.
func (c *SnapshotCache) ReadLegacyConfiguration(ctx context.Context, userID string) (*entity.UserConfiguration, bool) {
	cfg := entity.DefaultConfiguration(userID)
	found := false

	if raw, ok := c.get(ctx, legacyMinStockKey(userID)); ok {
		found = true
		// un valor no numérico o 0 vuelve al umbral por defecto
		if n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(string(raw)), "\"")); err == nil && n > 0 {
			cfg.MinStockThreshold = n
		}
	}
	var fields map[string]bool
	if c.decode(ctx, legacyLoadFormKey(userID), &fields) {
		found = true
		for k, v := range fields {
			cfg.LoadFormFields[k] = v
		}
	}
	return cfg, found
}

// ReadLegacyDiscounts lee "descuentosPorMarca_<uid>".
func (c *SnapshotCache) ReadLegacyDiscounts(ctx context.Context, userID string) entity.BrandDiscounts {
	return c.readDiscounts(ctx, legacyDiscountsKey(userID))
}

// HasLegacyData indica si queda alguna clave de la versión sólo local.
func (c *SnapshotCache) HasLegacyData(ctx context.Context, userID string) bool {
	for _, key := range []string{
		legacyProductsKey(userID),
		legacyGroupsKey(userID),
		legacyMinStockKey(userID),
		legacyLoadFormKey(userID),
		legacyDiscountsKey(userID),
	} {
		if _, ok := c.get(ctx, key); ok {
			return true
		}
	}
	return false
}

// ── Store ────────────────────────────────────────────────────────────────────

func (c *SnapshotCache) decode(ctx context.Context, key string, dst any) bool {
	raw, ok := c.get(ctx, key)
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("snapshot ilegible, se usan valores por defecto")
		return false
	}
	return true
}

func (c *SnapshotCache) encode(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("no se pudo serializar el snapshot")
		return
	}
	c.set(ctx, key, raw)
}

// get y set no propagan la cancelación del request: un cliente que corta la conexión
// no debe confundirse con un store caído.
func (c *SnapshotCache) get(ctx context.Context, key string) ([]byte, bool) {
	ctx = context.WithoutCancel(ctx)
	if !c.degraded.Load() {
		raw, ok, err := c.store.Get(ctx, key)
		if err == nil {
			return raw, ok
		}
		c.degrade(err, key)
	}
	raw, ok, _ := c.memory.Get(ctx, key)
	return raw, ok
}

func (c *SnapshotCache) set(ctx context.Context, key string, raw []byte) {
	ctx = context.WithoutCancel(ctx)
	if !c.degraded.Load() {
		err := c.store.Set(ctx, key, raw)
		if err == nil {
			return
		}
		c.degrade(err, key)
	}
	_ = c.memory.Set(ctx, key, raw)
}

func (c *SnapshotCache) degrade(err error, key string) {
	if c.degraded.CompareAndSwap(false, true) {
		c.log.Error().Err(fmt.Errorf("%w: %w", domain.ErrLocalStorageUnavailable, err)).
			Str("key", key).
			Msg("almacenamiento local caído, el caché sigue en memoria")
	}
}
