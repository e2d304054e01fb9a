package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sagarpandeyprofessional/keasy-api/internal/config"
	"github.com/sagarpandeyprofessional/keasy-api/internal/database"
	"github.com/sagarpandeyprofessional/keasy-api/internal/handlers"
	"github.com/sagarpandeyprofessional/keasy-api/internal/search"
	"github.com/sagarpandeyprofessional/keasy-api/internal/services"
	"github.com/sagarpandeyprofessional/keasy-api/internal/store"
)

func main() {
	// 1. Load Environment Variables (.env is optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load(os.Getenv("KEASY_CONFIG"))
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// 2. Record Store (Postgres or the hosted Supabase tables)
	var st store.Store
	switch cfg.Store.Backend {
	case config.BackendSupabase:
		st, err = store.NewSupabaseStore(cfg.Store.SupabaseURL, cfg.Store.SupabaseKey)
		if err != nil {
			log.Fatal("Failed to init supabase store:", err)
		}
		log.Println("Using Supabase store")
	default:
		db := database.Connect(cfg.Store.PostgresDSN)
		st = store.NewGormStore(db)
	}

	// 3. Initialize Core Services (Dependencies)
	cache := search.NewResultCache(time.Duration(cfg.Cache.TTL))
	jobService := services.NewJobService(st, cache)
	interactionService := services.NewInteractionService(st)
	moderationService := services.NewModerationService(st, cache)
	referenceService := services.NewReferenceService(st)

	// 4. Initialize Handlers
	jobHandler := handlers.NewJobHandler(jobService, interactionService)
	adminHandler := handlers.NewAdminHandler(moderationService, referenceService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-User-ID", "X-User-Role"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public listing surface
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.GET("/categories", adminHandler.ListCategories)
		api.GET("/languages", adminHandler.ListLanguages)

		// Employer surface
		api.POST("/jobs", jobHandler.SubmitJob)
		api.PUT("/jobs/:id", jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)

		// Interaction surface
		api.POST("/jobs/:id/save", jobHandler.ToggleSave)
		api.GET("/saved", jobHandler.ListSaved)
		api.POST("/jobs/:id/apply", jobHandler.Apply)
		api.GET("/applications", jobHandler.ListApplications)

		// Moderation surface
		admin := api.Group("/admin", handlers.RequireAdmin)
		{
			admin.GET("/jobs/pending", adminHandler.PendingQueue)
			admin.PATCH("/jobs/:id/approval", adminHandler.Decide)
			admin.POST("/jobs/approval", adminHandler.BulkDecide)
		}
	}

	log.Printf("🚀 Server starting on %s...", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
