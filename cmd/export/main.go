// Command export renders the seed data to the static-mode JSON layout.
// The resulting tree, served from any plain file host, stands in for the
// live API's GET endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"keystone-server/internal/config"
	"keystone-server/internal/export"
	"keystone-server/internal/repository"
	"keystone-server/internal/service"
	sharedLogger "keystone-server/shared/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	outDir := flag.String("out", cfg.ExportDir, "directory to write the JSON export into")
	flag.Parse()

	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: "console",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	storage := repository.NewMemoryStorage(cfg.DemoUserID, logger)
	exporter := export.NewExporter(
		service.NewStoryService(storage, logger),
		service.NewProgressService(storage, logger),
		service.NewCharacterService(storage, logger),
		cfg.DemoUserID,
		logger,
	)

	if err := exporter.Export(context.Background(), *outDir); err != nil {
		logger.Fatal("Export failed", zap.Error(err))
	}

	logger.Info("Export written", zap.String("dir", *outDir))
}
