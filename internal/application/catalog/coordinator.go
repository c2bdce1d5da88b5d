package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Coordinator resuelve cada operación de una sesión: primero el backend remoto y,
// si falla, la mutación equivalente sobre el caché local. Con éxito remoto el
// caché queda como espejo del resultado. El llamador sólo ve un error cuando
// también falla la operación local.
type Coordinator struct {
	session   Session
	products  repository.ProductRepository
	groups    repository.GroupRepository
	configs   repository.ConfigurationRepository
	discounts repository.DiscountRepository
	cache     *SnapshotCache
	breaker   *Breaker
	timeout   time.Duration
	log       zerolog.Logger
}

// Session devuelve la sesión del coordinador.
func (c *Coordinator) Session() Session {
	return c.session
}

// remote ejecuta fn con deadline propio y a través del circuito. Un request ya
// cancelado no llega al circuito; uno cancelado en vuelo no cuenta como fallo.
func (c *Coordinator) remote(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	return c.breaker.Execute(func() error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		err := fn(callCtx)
		if err != nil && errors.Is(ctx.Err(), context.Canceled) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %w", err, context.Canceled)
		}
		if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrRemoteUnavailable) {
			return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
		}
		return err
	})
}

func (c *Coordinator) fallback(err error, kind, op string) {
	c.log.Warn().Err(err).
		Str("uid", c.session.UserID).
		Str("kind", kind).
		Str("op", op).
		Msg("backend remoto falló, se usa el caché local")
}

// ── Productos ────────────────────────────────────────────────────────────────

// ListProducts devuelve los productos del usuario. Con éxito remoto el snapshot
// se reemplaza por completo con el resultado.
func (c *Coordinator) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	list, _ := c.listProducts(ctx)
	return list, nil
}

// listProducts informa además si la lista vino del backend remoto.
func (c *Coordinator) listProducts(ctx context.Context) ([]*entity.Product, bool) {
	uid := c.session.UserID
	if !c.session.Authenticated() {
		return c.cache.ReadProducts(ctx, uid), false
	}

	var list []*entity.Product
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		list, err = c.products.ListByUser(ctx, uid)
		return err
	})
	if err != nil {
		c.fallback(err, KindProducts, "list")
		return c.cache.ReadProducts(ctx, uid), false
	}
	if list == nil {
		list = []*entity.Product{}
	}
	c.cache.WriteProducts(ctx, uid, list)
	return list, true
}

// GetProduct busca el producto por ID en la lista remota y, sin backend, en el
// caché. Devuelve domain.ErrNotFound si no aparece.
func (c *Coordinator) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	list, _ := c.listProducts(ctx)
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
}

// CreateProduct inserta el producto. Sin backend se guarda sólo en el caché con un ID local.
func (c *Coordinator) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	uid := c.session.UserID
	product.UserID = uid
	if !c.session.Authenticated() {
		return c.cache.AppendLocalProduct(ctx, uid, product), nil
	}

	var saved *entity.Product
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		saved, err = c.products.Create(ctx, uid, product)
		return err
	})
	if err != nil {
		c.fallback(err, KindProducts, "create")
		return c.cache.AppendLocalProduct(ctx, uid, product), nil
	}
	c.cache.UpsertProduct(ctx, uid, saved)
	return saved, nil
}

// UpdateProduct aplica el patch. Si el ID no existe en el backend ni en el caché
// devuelve domain.ErrNotFound.
func (c *Coordinator) UpdateProduct(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	uid := c.session.UserID
	if !c.session.Authenticated() {
		return c.cache.UpdateLocalProduct(ctx, uid, id, patch)
	}

	var updated *entity.Product
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		updated, err = c.products.Update(ctx, uid, id, patch)
		return err
	})
	if err != nil {
		c.fallback(err, KindProducts, "update")
		return c.cache.UpdateLocalProduct(ctx, uid, id, patch)
	}
	c.cache.UpsertProduct(ctx, uid, updated)
	return updated, nil
}

// DeleteProduct elimina el producto; el caché lo descarta en cualquier caso.
func (c *Coordinator) DeleteProduct(ctx context.Context, id string) error {
	uid := c.session.UserID
	if c.session.Authenticated() {
		err := c.remote(ctx, func(ctx context.Context) error {
			return c.products.Delete(ctx, uid, id)
		})
		if err != nil {
			c.fallback(err, KindProducts, "delete")
		}
	}
	c.cache.EvictProduct(ctx, uid, id)
	return nil
}

// ── Grupos ───────────────────────────────────────────────────────────────────

// ListGroups devuelve los nombres de grupo con el grupo por defecto primero.
func (c *Coordinator) ListGroups(ctx context.Context) ([]string, error) {
	uid := c.session.UserID
	if !c.session.Authenticated() {
		return c.cache.ReadGroups(ctx, uid), nil
	}

	var groups []*entity.Group
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		groups, err = c.groups.ListByUser(ctx, uid)
		return err
	})
	if err != nil {
		c.fallback(err, KindGroups, "list")
		return c.cache.ReadGroups(ctx, uid), nil
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	c.cache.WriteGroups(ctx, uid, names)
	return WithDefaultGroup(names), nil
}

// CreateGroup agrega un grupo. El nombre reservado, vacío o repetido se rechaza
// antes de tocar el backend o el caché.
func (c *Coordinator) CreateGroup(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	uid := c.session.UserID
	switch {
	case name == "":
		return "", fmt.Errorf("%w: nombre de grupo vacío", domain.ErrInvalidInput)
	case entity.IsReserved(name):
		return "", domain.ErrReservedGroup
	case c.cache.HasGroup(ctx, uid, name):
		return "", domain.ErrGroupExists
	}

	if c.session.Authenticated() {
		err := c.remote(ctx, func(ctx context.Context) error {
			_, err := c.groups.Create(ctx, &entity.Group{UserID: uid, Name: name})
			return err
		})
		if err != nil {
			c.fallback(err, KindGroups, "create")
		}
	}
	c.cache.AddGroup(ctx, uid, name)
	return name, nil
}

// DeleteGroup elimina el grupo. Los productos que lo usan conservan el nombre.
func (c *Coordinator) DeleteGroup(ctx context.Context, name string) error {
	if entity.IsReserved(name) {
		return domain.ErrReservedGroup
	}
	uid := c.session.UserID
	if c.session.Authenticated() {
		err := c.remote(ctx, func(ctx context.Context) error {
			return c.groups.Delete(ctx, uid, name)
		})
		if err != nil {
			c.fallback(err, KindGroups, "delete")
		}
	}
	c.cache.RemoveGroup(ctx, uid, name)
	return nil
}

// ── Configuración ────────────────────────────────────────────────────────────

// GetConfiguration devuelve la configuración. Si el usuario aún no tiene una en el
// backend, se crea con los valores por defecto.
func (c *Coordinator) GetConfiguration(ctx context.Context) (*entity.UserConfiguration, error) {
	uid := c.session.UserID
	if !c.session.Authenticated() {
		return c.cache.ReadConfiguration(ctx, uid), nil
	}

	var cfg *entity.UserConfiguration
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		cfg, err = c.configs.Get(ctx, uid)
		return err
	})
	switch {
	case err == nil:
		c.cache.WriteConfiguration(ctx, cfg)
		return cfg, nil
	case errors.Is(err, domain.ErrNotFound):
		return c.SaveConfiguration(ctx, entity.DefaultConfiguration(uid))
	default:
		c.fallback(err, KindConfiguration, "get")
		return c.cache.ReadConfiguration(ctx, uid), nil
	}
}

// SaveConfiguration guarda (upsert) la configuración del usuario.
func (c *Coordinator) SaveConfiguration(ctx context.Context, cfg *entity.UserConfiguration) (*entity.UserConfiguration, error) {
	if cfg == nil || cfg.MinStockThreshold < 0 {
		return nil, fmt.Errorf("%w: stock mínimo inválido", domain.ErrInvalidInput)
	}
	uid := c.session.UserID
	cfg.UserID = uid
	if !c.session.Authenticated() {
		c.cache.WriteConfiguration(ctx, cfg)
		return cfg, nil
	}

	var saved *entity.UserConfiguration
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		saved, err = c.configs.Upsert(ctx, cfg)
		return err
	})
	if err != nil {
		c.fallback(err, KindConfiguration, "upsert")
		c.cache.WriteConfiguration(ctx, cfg)
		return cfg, nil
	}
	c.cache.WriteConfiguration(ctx, saved)
	return saved, nil
}

// ── Descuentos por marca ─────────────────────────────────────────────────────

func (c *Coordinator) discountsRemote() bool {
	return c.session.Authenticated() && c.discounts != nil
}

// ListDiscounts devuelve los descuentos del usuario indexados por marca.
func (c *Coordinator) ListDiscounts(ctx context.Context) (entity.BrandDiscounts, error) {
	uid := c.session.UserID
	if !c.discountsRemote() {
		return c.cache.ReadDiscounts(ctx, uid), nil
	}

	var rows []*entity.BrandDiscount
	err := c.remote(ctx, func(ctx context.Context) error {
		var err error
		rows, err = c.discounts.ListByUser(ctx, uid)
		return err
	})
	if err != nil {
		c.fallback(err, KindDiscounts, "list")
		return c.cache.ReadDiscounts(ctx, uid), nil
	}
	out := entity.ToDiscounts(rows)
	c.cache.WriteDiscounts(ctx, uid, out)
	return out, nil
}

// SetDiscount guarda el porcentaje (0..100) de la marca. Un 0 quita el descuento.
func (c *Coordinator) SetDiscount(ctx context.Context, brand string, percent int) error {
	brand = entity.NormalizeBrand(brand)
	switch {
	case brand == "":
		return fmt.Errorf("%w: marca vacía", domain.ErrInvalidInput)
	case percent < 0 || percent > entity.MaxDiscount:
		return fmt.Errorf("%w: el descuento debe estar entre 0 y %d", domain.ErrInvalidInput, entity.MaxDiscount)
	case percent == 0:
		return c.DeleteDiscount(ctx, brand)
	}
	uid := c.session.UserID
	if c.discountsRemote() {
		err := c.remote(ctx, func(ctx context.Context) error {
			_, err := c.discounts.Upsert(ctx, &entity.BrandDiscount{UserID: uid, Brand: brand, Percent: percent})
			return err
		})
		if err != nil {
			c.fallback(err, KindDiscounts, "upsert")
		}
	}
	c.cache.SetDiscount(ctx, uid, brand, percent)
	return nil
}

// DeleteDiscount quita el descuento de la marca; el caché lo descarta en cualquier caso.
func (c *Coordinator) DeleteDiscount(ctx context.Context, brand string) error {
	brand = entity.NormalizeBrand(brand)
	if brand == "" {
		return fmt.Errorf("%w: marca vacía", domain.ErrInvalidInput)
	}
	uid := c.session.UserID
	if c.discountsRemote() {
		err := c.remote(ctx, func(ctx context.Context) error {
			return c.discounts.Delete(ctx, uid, brand)
		})
		if err != nil {
			c.fallback(err, KindDiscounts, "delete")
		}
	}
	c.cache.RemoveDiscount(ctx, uid, brand)
	return nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: producto vacío", domain.ErrInvalidInput)
	case p.Quantity < 0:
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	case p.WholesalePrice.IsNegative():
		return fmt.Errorf("%w: el precio mayorista no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func validatePatch(p entity.ProductPatch) error {
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if p.WholesalePrice != nil && p.WholesalePrice.IsNegative() {
		return fmt.Errorf("%w: el precio mayorista no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
