package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// MigrationReport resume una ejecución del Migrator.
type MigrationReport struct {
	Products        int  `json:"productos"`
	ProductsSkipped int  `json:"productos_omitidos"`
	Groups          int  `json:"grupos"`
	GroupsSkipped   int  `json:"grupos_omitidos"`
	Configuration   bool `json:"configuracion"`
	Discounts       int  `json:"descuentos"`
}

// Migrator sube al backend los datos que la versión sólo local dejó en el store.
// Recorre productos, luego grupos (sin el grupo por defecto), la configuración y
// por último los descuentos por marca. Un ítem que falla se registra y se omite; la migración sigue.
type Migrator struct {
	cache *SnapshotCache
	log   zerolog.Logger
}

// NewMigrator crea el driver de migración sobre el caché compartido.
func NewMigrator(cache *SnapshotCache, log zerolog.Logger) *Migrator {
	return &Migrator{cache: cache, log: log}
}

// Pending indica si hay datos heredados para el usuario.
func (m *Migrator) Pending(ctx context.Context, userID string) bool {
	return m.cache.HasLegacyData(ctx, userID)
}

// Run migra los datos heredados a través del coordinador. No vuelve a listar:
// eso le corresponde a quien dispara la migración.
func (m *Migrator) Run(ctx context.Context, coord *Coordinator) MigrationReport {
	var report MigrationReport
	uid := coord.Session().UserID
	log := m.log.With().Str("uid", uid).Logger()

	for _, p := range m.cache.ReadLegacyProducts(ctx, uid) {
		p.ID = ""
		if _, err := coord.CreateProduct(ctx, p); err != nil {
			report.ProductsSkipped++
			log.Error().Err(err).Str("kind", KindProducts).Str("codigo", p.Code).Msg("no se pudo migrar el producto")
			continue
		}
		report.Products++
	}

	for _, name := range m.cache.ReadLegacyGroups(ctx, uid) {
		if name == "" || entity.IsReserved(name) {
			continue
		}
		if _, err := coord.CreateGroup(ctx, name); err != nil {
			report.GroupsSkipped++
			log.Error().Err(err).Str("kind", KindGroups).Str("grupo", name).Msg("no se pudo migrar el grupo")
			continue
		}
		report.Groups++
	}

	cfg, _ := m.cache.ReadLegacyConfiguration(ctx, uid)
	if _, err := coord.SaveConfiguration(ctx, cfg); err != nil {
		log.Error().Err(err).Str("kind", KindConfiguration).Msg("no se pudo migrar la configuración")
	} else {
		report.Configuration = true
	}

	for brand, pct := range m.cache.ReadLegacyDiscounts(ctx, uid) {
		if pct == 0 {
			continue
		}
		if err := coord.SetDiscount(ctx, brand, pct); err != nil {
			log.Error().Err(err).Str("kind", KindDiscounts).Str("marca", brand).Msg("no se pudo migrar el descuento")
			continue
		}
		report.Discounts++
	}

	log.Info().
		Int("productos", report.Products).
		Int("grupos", report.Groups).
		Bool("configuracion", report.Configuration).
		Int("descuentos", report.Discounts).
		Msg("migración de datos locales completada")
	return report
}
