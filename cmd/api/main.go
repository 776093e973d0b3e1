package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/query"
	"github.com/jhoicas/stockmanager-api/internal/application/usecase"
	"github.com/jhoicas/stockmanager-api/internal/domain/repository"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/metrics"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockmanager-api/internal/interfaces/http"
	"github.com/jhoicas/stockmanager-api/pkg/config"
	"github.com/jhoicas/stockmanager-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores puertos de persistencia según STORE_DRIVER.
type stores struct {
	movements repository.MovementRepository
	balances  repository.BalanceRepository
	catalog   repository.CatalogRepository
	summary   repository.SalesSummaryRepository
	tx        inventory.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	m := metrics.New()
	balanceStore := inventory.NewBalanceStore(st.balances, inventory.BalanceOptions{
		MaxAttempts: cfg.Balance.MaxAttempts,
		BaseDelay:   cfg.Balance.BaseDelay,
		MaxDelay:    cfg.Balance.MaxDelay,
		Timeout:     cfg.Store.Timeout,
	}, m, log.Component("balance"))
	coordinator := inventory.NewCoordinator(st.movements, balanceStore, cfg.Store.Timeout, m, log.Component("coordinator"))
	catalogUC := usecase.NewCatalogUseCase(st.catalog, st.tx, balanceStore, cfg.Store.Timeout, log.Component("catalog"))
	gateway := query.NewGateway(st.movements, st.balances, st.summary, st.catalog,
		cfg.Store.Timeout, m, log.Component("query"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Manager API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	deps := httpRouter.RouterDeps{
		Coordinator: coordinator,
		CatalogUC:   catalogUC,
		Query:       gateway,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m.Handler()
	}
	httpRouter.Router(app, deps)

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

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("driver memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			movements: s.Movements(),
			balances:  s.Balances(),
			catalog:   s.Catalog(),
			summary:   s.SalesSummary(),
			tx:        s.TxRunner(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		movements: postgres.NewMovementRepository(pool),
		balances:  postgres.NewBalanceRepository(pool),
		catalog:   postgres.NewCatalogRepository(pool),
		summary:   postgres.NewSalesSummaryRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
