package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// SessionData es lo que la capa de presentación necesita al abrir una sesión.
type SessionData struct {
	Products      []*entity.Product
	Groups        []string
	Configuration *entity.UserConfiguration
	Discounts     entity.BrandDiscounts
	// Remote indica si los productos vinieron del backend remoto.
	Remote    bool
	Migration *MigrationReport
}

// Loader carga los datos de una sesión y dispara la migración única cuando el
// backend responde sin productos y quedan datos heredados en el store.
type Loader struct {
	factory  *Factory
	migrator *Migrator
	flight   singleflight.Group
	mu       sync.RWMutex
	obs      []Observer
	log      zerolog.Logger
}

// NewLoader crea el loader.
func NewLoader(factory *Factory, migrator *Migrator, log zerolog.Logger) *Loader {
	return &Loader{factory: factory, migrator: migrator, log: log}
}

// Register agrega un observador que se notifica al final de cada carga.
func (l *Loader) Register(o Observer) {
	l.mu.Lock()
	l.obs = append(l.obs, o)
	l.mu.Unlock()
}

// Load carga productos, grupos, configuración y descuentos. Las cargas concurrentes del mismo
// usuario comparten una sola ejecución, así la migración no corre dos veces.
func (l *Loader) Load(ctx context.Context, session Session) (*SessionData, error) {
	key := session.UserID
	if session.Offline {
		key = "offline:" + key
	}
	v, err, _ := l.flight.Do(key, func() (any, error) {
		return l.load(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SessionData), nil
}

func (l *Loader) load(ctx context.Context, session Session) (*SessionData, error) {
	coord := l.factory.For(session)

	data, err := l.fetch(ctx, coord)
	if err != nil {
		return nil, err
	}

	if data.Remote && len(data.Products) == 0 && l.migrator != nil && l.migrator.Pending(ctx, session.UserID) {
		l.log.Info().Str("uid", session.UserID).Msg("backend sin productos, migrando datos locales")
		report := l.migrator.Run(ctx, coord)
		if data, err = l.fetch(ctx, coord); err != nil {
			return nil, err
		}
		data.Migration = &report
	}

	l.mu.RLock()
	observers := append([]Observer(nil), l.obs...)
	l.mu.RUnlock()
	for _, o := range observers {
		o.SessionLoaded(ctx, session, data)
	}
	return data, nil
}

// fetch lista productos primero y, en paralelo, grupos, configuración y descuentos.
func (l *Loader) fetch(ctx context.Context, coord *Coordinator) (*SessionData, error) {
	data := &SessionData{}
	data.Products, data.Remote = coord.listProducts(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Groups, err = coord.ListGroups(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Configuration, err = coord.GetConfiguration(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Discounts, err = coord.ListDiscounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
