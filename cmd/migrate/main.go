// migrate aplica las migraciones SQL embebidas y crea el primer admin de la cadena.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate steps -1
//	go run ./cmd/migrate version
//	go run ./cmd/migrate force 1
//	go run ./cmd/migrate -email admin@example.com -password secreto123 admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Ristoranti-api/internal/application/auth"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ristoranti-api/pkg/config"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

func main() {
	var email, password, name string
	flag.StringVar(&email, "email", "", "email del admin (comando admin)")
	flag.StringVar(&password, "password", "", "password del admin (comando admin)")
	flag.StringVar(&name, "name", "Admin", "nombre del admin (comando admin)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if args[0] == "admin" {
		if err := createAdmin(cfg, email, password, name); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", email).Msg("admin creado")
		return
	}

	dbURL, err := postgres.MigrationURL(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("DSN de migraciones")
	}
	mg, err := postgres.NewMigrator(dbURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migraciones")
		}
	}()

	switch args[0] {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		var n int
		n, err = intArg(args)
		if err == nil {
			err = mg.Steps(n)
		}
	case "force":
		var v int
		v, err = intArg(args)
		if err == nil {
			err = mg.Force(v)
		}
	case "version":
		v, dirty, verr := mg.Version()
		if verr == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		}
		err = verr
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("migración fallida")
	}
}

func createAdmin(cfg *config.Config, email, password, name string) error {
	if email == "" || password == "" {
		return fmt.Errorf("-email y -password son requeridos")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewStoreRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     entity.RoleAdmin,
	})
	return err
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requiere un número", args[0])
	}
	return strconv.Atoi(args[1])
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Uso: migrate [flags] <comando>

Comandos:
  up              aplica todas las migraciones pendientes
  down            revierte todas las migraciones
  steps <n>       aplica n pasos (negativo = revertir)
  version         muestra la versión actual
  force <v>       fija la versión sin ejecutar SQL
  admin           crea un usuario admin (-email, -password, -name)`)
	flag.PrintDefaults()
}
