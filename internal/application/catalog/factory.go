package catalog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Deps dependencias compartidas por todas las sesiones.
type Deps struct {
	Products       repository.ProductRepository
	Groups         repository.GroupRepository
	Configurations repository.ConfigurationRepository
	// Discounts es opcional: sin él los descuentos viven sólo en el caché.
	Discounts repository.DiscountRepository
	Cache     *SnapshotCache
	Breaker   *Breaker
	// RemoteTimeout es el deadline de cada llamada al backend; 0 = sin deadline propio.
	RemoteTimeout time.Duration
	// RemoteEnabled en false deja todas las sesiones en modo sin conexión.
	RemoteEnabled bool
	Log           zerolog.Logger
}

// Factory construye un Coordinator por sesión sobre dependencias compartidas.
type Factory struct {
	deps Deps
}

// NewFactory crea la fábrica. Sin caché o circuito se crean unos propios.
func NewFactory(deps Deps) *Factory {
	if deps.Cache == nil {
		deps.Cache = NewSnapshotCache(nil, deps.Log)
	}
	if deps.Breaker == nil {
		deps.Breaker = NewBreaker(BreakerConfig{})
	}
	if deps.Products == nil || deps.Groups == nil || deps.Configurations == nil {
		deps.RemoteEnabled = false
	}
	return &Factory{deps: deps}
}

// For devuelve el coordinador de la sesión.
func (f *Factory) For(session Session) *Coordinator {
	if !f.deps.RemoteEnabled {
		session.Offline = true
	}
	return &Coordinator{
		session:   session,
		products:  f.deps.Products,
		groups:    f.deps.Groups,
		configs:   f.deps.Configurations,
		discounts: f.deps.Discounts,
		cache:     f.deps.Cache,
		breaker:   f.deps.Breaker,
		timeout:   f.deps.RemoteTimeout,
		log:       f.deps.Log,
	}
}

// Cache devuelve el caché compartido.
func (f *Factory) Cache() *SnapshotCache {
	return f.deps.Cache
}

// Breaker devuelve el circuito compartido.
func (f *Factory) Breaker() *Breaker {
	return f.deps.Breaker
}
