package usecase_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// remoteStub es un backend remoto en memoria para un solo usuario.
type remoteStub struct {
	mu        sync.Mutex
	nextID    int
	products  []*entity.Product
	config    *entity.UserConfiguration
	discounts map[string]int
}

func newRemoteStub() *remoteStub {
	return &remoteStub{nextID: 100, discounts: map[string]int{}}
}

// onlineFactory arma la fábrica con el stub remoto y un caché vacío.
func onlineFactory(r *remoteStub) *catalog.Factory {
	return catalog.NewFactory(catalog.Deps{
		Products:       stubProducts{r},
		Groups:         stubGroups{},
		Configurations: stubConfigs{r},
		Discounts:      stubDiscounts{r},
		RemoteEnabled:  true,
		Log:            logger.Nop().Zerolog(),
	})
}

type stubProducts struct{ r *remoteStub }

func (s stubProducts) ListByUser(_ context.Context, _ string) ([]*entity.Product, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	out := make([]*entity.Product, 0, len(s.r.products))
	for _, p := range s.r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s stubProducts) Create(_ context.Context, uid string, p *entity.Product) (*entity.Product, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	s.r.nextID++
	cp := *p
	cp.ID = strconv.Itoa(s.r.nextID)
	cp.UserID = uid
	s.r.products = append(s.r.products, &cp)
	out := cp
	return &out, nil
}

func (s stubProducts) Update(_ context.Context, _, id string, patch entity.ProductPatch) (*entity.Product, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	for _, p := range s.r.products {
		if p.ID == id {
			patch.Apply(p)
			out := *p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrBackend, domain.ErrNotFound)
}

func (s stubProducts) Delete(context.Context, string, string) error { return nil }

type stubGroups struct{}

func (stubGroups) ListByUser(context.Context, string) ([]*entity.Group, error) { return nil, nil }
func (stubGroups) Create(_ context.Context, g *entity.Group) (*entity.Group, error) {
	return g, nil
}
func (stubGroups) Delete(context.Context, string, string) error { return nil }

type stubConfigs struct{ r *remoteStub }

func (s stubConfigs) Get(_ context.Context, _ string) (*entity.UserConfiguration, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	if s.r.config == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, domain.ErrNotFound)
	}
	cp := *s.r.config
	return &cp, nil
}

func (s stubConfigs) Upsert(_ context.Context, cfg *entity.UserConfiguration) (*entity.UserConfiguration, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	cp := *cfg
	s.r.config = &cp
	out := cp
	return &out, nil
}

type stubDiscounts struct{ r *remoteStub }

func (s stubDiscounts) ListByUser(_ context.Context, uid string) ([]*entity.BrandDiscount, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	out := make([]*entity.BrandDiscount, 0, len(s.r.discounts))
	for brand, pct := range s.r.discounts {
		out = append(out, &entity.BrandDiscount{UserID: uid, Brand: brand, Percent: pct})
	}
	return out, nil
}

func (s stubDiscounts) Upsert(_ context.Context, d *entity.BrandDiscount) (*entity.BrandDiscount, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	s.r.discounts[d.Brand] = d.Percent
	out := *d
	return &out, nil
}

func (s stubDiscounts) Delete(_ context.Context, _, brand string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	delete(s.r.discounts, brand)
	return nil
}
