package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("remote", cfg.Sync.RemoteEnabled).
		Str("cache", cfg.Cache.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema")
		}
	}

	store, closer, err := localstore.Open(ctx, cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Cache.Driver).Msg("caché local")
	}
	defer closer.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Capa de sincronización: backend remoto con caché local de respaldo.
	syncLog := log.Component("sync")
	cache := catalog.NewSnapshotCache(store, syncLog)
	factory := catalog.NewFactory(catalog.Deps{
		Products:       postgres.NewProductRepository(pool),
		Groups:         postgres.NewGroupRepository(pool),
		Configurations: postgres.NewConfigurationRepository(pool),
		Discounts:      postgres.NewDiscountRepository(pool),
		Cache:          cache,
		Breaker: catalog.NewBreaker(catalog.BreakerConfig{
			FailureThreshold: cfg.Sync.BreakerThreshold,
			OpenFor:          cfg.Sync.BreakerOpenFor,
		}),
		RemoteTimeout: cfg.Sync.RemoteTimeout,
		RemoteEnabled: cfg.Sync.RemoteEnabled,
		Log:           syncLog,
	})
	loader := catalog.NewLoader(factory, catalog.NewMigrator(cache, syncLog), syncLog)
	loader.Register(catalog.ObserverFunc(func(_ context.Context, s catalog.Session, data *catalog.SessionData) {
		ev := syncLog.Info().
			Str("uid", s.UserID).
			Bool("remote", data.Remote).
			Int("products", len(data.Products)).
			Int("groups", len(data.Groups))
		if m := data.Migration; m != nil {
			ev = ev.Int("migrated_products", m.Products).Int("migrated_groups", m.Groups)
		}
		ev.Msg("sesión cargada")
	}))

	authUC := auth.NewAuthUseCase(userRepo, profileRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Admin.Email)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // fotos en data-URI
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderSyncMode,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		SessionUC:       usecase.NewSessionUseCase(loader),
		ProductUC:       usecase.NewProductUseCase(factory, infrapdf.NewShortlistGenerator()),
		GroupUC:         usecase.NewGroupUseCase(factory),
		ConfigurationUC: usecase.NewConfigurationUseCase(factory),
		DiscountUC:      usecase.NewDiscountUseCase(factory),
		ProfileUC:       usecase.NewProfileUseCase(profileRepo),
		Factory:         factory,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
