// import_fatture importa desde disco fatture elettroniche XML (FatturaPA) con el mismo
// caso de uso que POST /api/fatture/import.
//
// Uso: go run ./cmd/import_fatture <archivo.xml | directorio>...
// Los directorios se recorren recursivamente buscando archivos .xml.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	infrafattura "github.com/jhoicas/Ristoranti-api/internal/infrastructure/fatturapa"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ristoranti-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ristoranti-api/pkg/config"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: import_fatture <archivo.xml | directorio>...")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	files, err := collect(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("buscar archivos")
	}
	if len(files) == 0 {
		log.Warn().Msg("no se encontraron archivos .xml")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var archiver fatture.Archiver
	if cfg.Storage.Enabled() {
		s3Archiver, err := storage.NewS3Archiver(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de S3")
		}
		archiver = s3Archiver
	}

	uc := fatture.NewImportUseCase(
		postgres.NewSupplierRepository(pool),
		postgres.NewInvoiceImportRepository(pool),
		postgres.NewTxRunner(pool),
		infrafattura.NewParser(),
		nil,
		archiver,
		log,
	)

	var failed int
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			failed++
			log.Error().Err(err).Str("file", path).Msg("leer archivo")
			continue
		}
		out, err := uc.Import(ctx, dto.ImportFatturaRequest{XMLContent: string(raw), FileName: filepath.Base(path)})
		if err != nil {
			failed++
			log.Error().Err(err).Str("file", path).Msg("importación fallida")
			continue
		}
		if !out.Success {
			failed++
		}
		fmt.Printf("%-40s %-12s creati=%d aggiornati=%d prezzi=%d errori=%d duplicata=%t\n",
			filepath.Base(path), out.Invoice.Number,
			out.Summary.ProductsCreated, out.Summary.ProductsUpdated, out.Summary.PricesRecorded,
			out.Summary.Errors, out.Duplicate)
	}

	log.Info().Int("files", len(files)).Int("failed", failed).Msg("importación terminada")
	if failed > 0 {
		os.Exit(2)
	}
}

// collect expande los directorios en la lista de archivos .xml que contienen.
func collect(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
