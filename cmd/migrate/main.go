// migrate aplica las migraciones goose embebidas contra la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset]
// Por defecto ejecuta "up".
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/stockmanager-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmanager-api/pkg/config"
	"github.com/jhoicas/stockmanager-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, command); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migración")
	}
	log.Info().Str("command", command).Msg("migración completada")
}
