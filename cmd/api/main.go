package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/internflow/applicant-tracker/internal/data"
	"github.com/internflow/applicant-tracker/internal/handlers"
	"github.com/internflow/applicant-tracker/internal/services"
	"github.com/internflow/applicant-tracker/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables (.env is optional; env vars may come
	// from the shell instead)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// 2. Seed the in-memory applicant store. This is the whole "database":
	// state lives for the process and is never written back anywhere.
	applicantStore := store.NewApplicantStore(data.SeedApplicants())

	// 3. Gemini client. A missing key is not fatal — the draft flow then
	// serves the fallback email bodies instead of AI-written ones.
	var generator services.EmailGenerator
	llm, err := services.NewLLMService(context.Background())
	if err != nil {
		log.Printf("Gemini disabled, drafts will use fallback text: %v", err)
	} else {
		generator = llm
		log.Println("Gemini client connected.")
	}

	draftService := services.NewDraftService(applicantStore, generator)

	// 4. Handlers
	applicantHandler := handlers.NewApplicantHandler(applicantStore)
	draftHandler := handlers.NewDraftHandler(draftService)

	// 5. Router & CORS (the SPA runs on its own origin in dev)
	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// 6. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/applicants", applicantHandler.ListApplicants)
		api.POST("/applicants", applicantHandler.AddApplicant)
		api.GET("/applicants/:id", applicantHandler.GetApplicant)
		api.DELETE("/applicants/:id", applicantHandler.DeleteApplicant)
		api.POST("/applicants/:id/actions/:action", applicantHandler.ApplyAction)
		api.GET("/stats", applicantHandler.GetStats)

		api.POST("/drafts", draftHandler.BeginDraft)
		api.GET("/drafts/current", draftHandler.CurrentDraft)
		api.POST("/drafts/confirm", draftHandler.ConfirmDraft)
		api.DELETE("/drafts", draftHandler.CancelDraft)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
