package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/contacts-backend/internal/db"
	"github.com/yungbote/contacts-backend/internal/handlers"
	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/observability"
	"github.com/yungbote/contacts-backend/internal/repos"
	"github.com/yungbote/contacts-backend/internal/server"
	"github.com/yungbote/contacts-backend/internal/services"
	"github.com/yungbote/contacts-backend/internal/utils"
	"github.com/yungbote/contacts-backend/internal/validate"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "contacts-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Validation
	theValidator := validate.New()

	// Repos
	log.Info("Setting up Repos from main...")
	contactRepo := repos.NewContactRepo(thePG, log)
	tagRepo := repos.NewTagRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	changeLogRepo := repos.NewChangeLogRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	tagService := services.NewTagService(thePG, log, theValidator, tagRepo)
	contactService := services.NewContactService(thePG, log, theValidator, contactRepo, tagRepo, noteRepo, changeLogRepo, tagService)

	// Handlers
	log.Info("Setting up handlers from main...")
	contactHandler := handlers.NewContactHandler(contactService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		ContactHandler: contactHandler,
		TagHandler:     tagHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
