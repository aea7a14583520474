package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/contacts-backend/internal/handlers"
	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/middleware"
)

type RouterConfig struct {
	Log            *logger.Logger
	ContactHandler *handlers.ContactHandler
	TagHandler     *handlers.TagHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("contacts-backend"))
	router.Use(middleware.RequestID(cfg.Log))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Contacts
	contacts := router.Group("/contacts")
	{
		contacts.POST("", cfg.ContactHandler.Create)
		contacts.GET("", cfg.ContactHandler.List)
		contacts.GET("/:id", cfg.ContactHandler.Get)
		contacts.PATCH("/:id", cfg.ContactHandler.Update)
		contacts.DELETE("/:id", cfg.ContactHandler.Delete)
		contacts.POST("/:id/notes", cfg.ContactHandler.AddNote)
		contacts.GET("/:id/notes", cfg.ContactHandler.ListNotes)
		contacts.DELETE("/:id/notes/:noteID", cfg.ContactHandler.DeleteNote)
		contacts.GET("/:id/history", cfg.ContactHandler.GetHistory)
	}

	// Tags
	tags := router.Group("/tags")
	{
		tags.POST("", cfg.TagHandler.Create)
		tags.GET("", cfg.TagHandler.List)
	}

	return router
}
