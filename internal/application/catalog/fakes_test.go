package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// fakeBackend simula el backend remoto en memoria. Con err != nil todas las
// llamadas fallan con ese error.
type fakeBackend struct {
	mu       sync.Mutex
	err      error
	calls    int
	nextID   int
	products map[string][]*entity.Product
	groups   map[string][]string
	configs  map[string]*entity.UserConfiguration
	discount map[string]map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:   100,
		products: map[string][]*entity.Product{},
		groups:   map[string][]string{},
		configs:  map[string]*entity.UserConfiguration{},
		discount: map[string]map[string]int{},
	}
}

func (b *fakeBackend) setDown(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *fakeBackend) productCount(uid string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.products[uid])
}

func (b *fakeBackend) enter() error {
	b.calls++
	return b.err
}

func (b *fakeBackend) repos() (repository.ProductRepository, repository.GroupRepository, repository.ConfigurationRepository) {
	return &fakeProducts{b}, &fakeGroups{b}, &fakeConfigs{b}
}

func (b *fakeBackend) discounts() repository.DiscountRepository {
	return &fakeDiscounts{b}
}

var errBackendDown = fmt.Errorf("%w: connection refused", domain.ErrRemoteUnavailable)

type fakeProducts struct{ b *fakeBackend }

func (f *fakeProducts) ListByUser(_ context.Context, uid string) ([]*entity.Product, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(f.b.products[uid]))
	for _, p := range f.b.products[uid] {
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Brand != out[j].Brand {
			return out[i].Brand < out[j].Brand
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, uid string, p *entity.Product) (*entity.Product, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	f.b.nextID++
	cp := *p
	cp.ID = strconv.Itoa(f.b.nextID)
	cp.UserID = uid
	f.b.products[uid] = append(f.b.products[uid], &cp)
	out := cp
	return &out, nil
}

func (f *fakeProducts) Update(_ context.Context, uid, id string, patch entity.ProductPatch) (*entity.Product, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	for _, p := range f.b.products[uid] {
		if p.ID == id {
			patch.Apply(p)
			out := *p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrBackend, domain.ErrNotFound)
}

func (f *fakeProducts) Delete(_ context.Context, uid, id string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return err
	}
	list := f.b.products[uid]
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.b.products[uid] = kept
	return nil
}

type fakeGroups struct{ b *fakeBackend }

func (f *fakeGroups) ListByUser(_ context.Context, uid string) ([]*entity.Group, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	names := append([]string(nil), f.b.groups[uid]...)
	sort.Strings(names)
	out := make([]*entity.Group, 0, len(names))
	for _, n := range names {
		out = append(out, &entity.Group{UserID: uid, Name: n})
	}
	return out, nil
}

func (f *fakeGroups) Create(_ context.Context, g *entity.Group) (*entity.Group, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	for _, n := range f.b.groups[g.UserID] {
		if n == g.Name {
			return nil, fmt.Errorf("%w: %w", domain.ErrBackend, domain.ErrDuplicate)
		}
	}
	f.b.groups[g.UserID] = append(f.b.groups[g.UserID], g.Name)
	return g, nil
}

func (f *fakeGroups) Delete(_ context.Context, uid, name string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return err
	}
	kept := f.b.groups[uid][:0]
	for _, n := range f.b.groups[uid] {
		if n != name {
			kept = append(kept, n)
		}
	}
	f.b.groups[uid] = kept
	return nil
}

type fakeConfigs struct{ b *fakeBackend }

func (f *fakeConfigs) Get(_ context.Context, uid string) (*entity.UserConfiguration, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	cfg, ok := f.b.configs[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, domain.ErrNotFound)
	}
	cp := *cfg
	return &cp, nil
}

func (f *fakeConfigs) Upsert(_ context.Context, cfg *entity.UserConfiguration) (*entity.UserConfiguration, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	cp := *cfg
	f.b.configs[cfg.UserID] = &cp
	out := cp
	return &out, nil
}

type fakeDiscounts struct{ b *fakeBackend }

func (f *fakeDiscounts) ListByUser(_ context.Context, uid string) ([]*entity.BrandDiscount, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	out := make([]*entity.BrandDiscount, 0, len(f.b.discount[uid]))
	for brand, pct := range f.b.discount[uid] {
		out = append(out, &entity.BrandDiscount{UserID: uid, Brand: brand, Percent: pct})
	}
	return out, nil
}

func (f *fakeDiscounts) Upsert(_ context.Context, d *entity.BrandDiscount) (*entity.BrandDiscount, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return nil, err
	}
	if f.b.discount[d.UserID] == nil {
		f.b.discount[d.UserID] = map[string]int{}
	}
	f.b.discount[d.UserID][d.Brand] = d.Percent
	out := *d
	return &out, nil
}

func (f *fakeDiscounts) Delete(_ context.Context, uid, brand string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if err := f.b.enter(); err != nil {
		return err
	}
	delete(f.b.discount[uid], brand)
	return nil
}

// failingStore simula un almacenamiento local que dejó de responder.
type failingStore struct{}

var errDiskFull = errors.New("quota exceeded")

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDiskFull }
func (failingStore) Set(context.Context, string, []byte) error         { return errDiskFull }
