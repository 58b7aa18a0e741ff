// @title HP Quiz API
// @version 1.0
// @description Backend for the Harry Potter trivia quiz.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"

	"hp_quiz_backend/internal/app"
	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/pkg/configwatcher"
	"hp_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migration finished, exiting")
		return
	}

	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded",
			zap.String("mode", newCfg.Server.Mode),
			zap.Int("max_image_size_mb", newCfg.Upload.MaxImageSizeMB))
		application.Config.ApplyRuntime(newCfg)
	})

	application.Run()
}
