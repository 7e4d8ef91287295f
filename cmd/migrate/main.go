// Comando migrate: aplica, revierte o lista las migraciones embebidas.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pos-api/pkg/config"
	"github.com/jhoicas/Pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	dsn := cfg.DB.ConnectionString()
	switch cmd {
	case "up":
		err = postgres.ApplyMigrations(ctx, dsn)
	case "down":
		err = postgres.RollbackMigration(ctx, dsn)
	case "status":
		err = postgres.MigrationStatus(ctx, dsn)
	default:
		fmt.Fprintf(os.Stderr, "uso: migrate [up|down|status]\n")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migraciones")
	}
	log.Info().Str("cmd", cmd).Msg("migraciones completadas")
}
