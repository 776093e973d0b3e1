// seed_catalog carga el catálogo de SKUs desde un CSV exportado de la hoja de cálculo original.
// Cada fila pasa por el alta normal (catálogo + saldo inicial en una transacción).
//
// Uso: go run ./cmd/seed_catalog productos.csv [utf8|gbk|latin1]
// Encabezados aceptados: sku,category,brand,name,color,size,quantity,unit_price
// o sus equivalentes 货物编码,货物种类,商标,货物名称,颜色,尺码,数量,单价.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stockmanager-api/internal/application/inventory"
	"github.com/jhoicas/stockmanager-api/internal/application/usecase"
	"github.com/jhoicas/stockmanager-api/internal/domain"
	"github.com/jhoicas/stockmanager-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmanager-api/pkg/config"
	"github.com/jhoicas/stockmanager-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog <archivo.csv> [utf8|gbk|latin1]")
		os.Exit(2)
	}
	encoding := "utf8"
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := parseCatalogCSV(f, encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	balances := inventory.NewBalanceStore(postgres.NewBalanceRepository(pool), inventory.BalanceOptions{
		MaxAttempts: cfg.Balance.MaxAttempts,
		BaseDelay:   cfg.Balance.BaseDelay,
		MaxDelay:    cfg.Balance.MaxDelay,
		Timeout:     cfg.Store.Timeout,
	}, nil, log.Component("balance"))
	uc := usecase.NewCatalogUseCase(postgres.NewCatalogRepository(pool), postgres.NewTxRunner(pool),
		balances, cfg.Store.Timeout, log.Component("seed"))

	var created, skipped int
	for i, row := range rows {
		if _, err := uc.AddSku(ctx, row); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
				skipped++
				log.Warn().Err(err).Int("line", i+2).Str("sku", row.SKU).Msg("fila omitida")
				continue
			}
			log.Fatal().Err(err).Int("line", i+2).Msg("alta de sku")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo cargado")
}
