package main

import (
	"log"

	"github.com/artur/glowing-lamp/internal/bot"
	"github.com/artur/glowing-lamp/internal/config"
	"github.com/artur/glowing-lamp/internal/database"
	"github.com/artur/glowing-lamp/internal/database/repository"
	"github.com/artur/glowing-lamp/internal/delivery"
	"github.com/artur/glowing-lamp/internal/extractor"
	"github.com/artur/glowing-lamp/internal/handler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация базы данных
	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Запускаем миграции
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	credRepo := repository.NewCredentialRepository(db.DB, cfg.DownloadDir)

	b, err := bot.New(cfg.Token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	gate := delivery.NewGate(cfg.MaxSizeMB)
	youtubeExt := extractor.NewYouTubeExtractor(cfg.DownloadDir)
	ytdlpExt := extractor.NewYtdlpExtractor(cfg.YtdlpPath, cfg.DownloadDir)

	// Порядок регистрации задаёт приоритет диспетчеризации
	b.RegisterHandler(handler.NewStartHandler())
	b.RegisterHandler(handler.NewCookieHandler(credRepo))
	b.RegisterHandler(handler.NewDownloadHandler(credRepo, youtubeExt, ytdlpExt, gate, cfg.UserAgent))

	// Запускаем бота
	b.Run()
}
