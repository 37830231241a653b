package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/config"
	"github.com/bloggang/writing-challenge-api/internal/database"
	"github.com/bloggang/writing-challenge-api/internal/handlers"
	"github.com/bloggang/writing-challenge-api/internal/middleware"
	"github.com/bloggang/writing-challenge-api/internal/repository"
	"github.com/bloggang/writing-challenge-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("challenge_session", store))

	// Initialize repositories
	db := database.GetDB()
	memberRepo := repository.NewMemberRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	cycleRepo := repository.NewCycleRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Initialize services
	memberService := services.NewMemberService(memberRepo)
	orgService := services.NewOrganizationService(orgRepo, memberRepo)
	generationService := services.NewGenerationService(generationRepo, cycleRepo, orgRepo)
	submissionService := services.NewSubmissionService(submissionRepo, cycleRepo, memberRepo, generationRepo, orgRepo)
	statusService := services.NewStatusService(orgRepo, generationRepo, cycleRepo, submissionRepo)
	notifier := services.NewDiscordNotifier()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(memberService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	generationHandler := handlers.NewGenerationHandler(generationService)
	statusHandler := handlers.NewStatusHandler(statusService, notifier)
	webhookHandler := handlers.NewWebhookHandler(submissionService, generationService, orgService, notifier, cfg.GithubWebhookSecret)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Writing Challenge API is running",
		})
	})

	// Webhook endpoint (signature-checked, unauthenticated)
	r.POST("/webhooks/github", webhookHandler.HandleGithubEvent)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentMember)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateCurrentMember)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.POST("/:slug/join", orgHandler.JoinOrganization)
			orgs.GET("/:slug", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
			orgs.GET("/:slug/members", middleware.RequireOrganizationAccess(), orgHandler.ListMembers)
			orgs.GET("/:slug/current-cycle", middleware.RequireOrganizationAccess(), statusHandler.CurrentCycle)
			orgs.DELETE("/:slug", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationAdmin(), orgHandler.DeactivateOrganization)
			orgs.POST("/:slug/generations", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationAdmin(), generationHandler.CreateGeneration)

			members := orgs.Group("/:slug/members/:member_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationAdmin())
			{
				members.POST("/approve", orgHandler.ApproveMember)
				members.POST("/reject", orgHandler.RejectMember)
				members.POST("/deactivate", orgHandler.DeactivateMember)
				members.PATCH("/role", orgHandler.ChangeMemberRole)
			}
		}

		// Generation and cycle routes (protected)
		generations := api.Group("/generations")
		generations.Use(middleware.RequireAuth())
		{
			generations.POST("/:id/activate", generationHandler.ActivateGeneration)
			generations.POST("/:id/deactivate", generationHandler.DeactivateGeneration)
			generations.POST("/:id/join", generationHandler.JoinGeneration)
			generations.POST("/:id/cycles", generationHandler.CreateCycle)
		}

		// Query surface for the bot and dashboard (protected)
		cycles := api.Group("/cycles")
		cycles.Use(middleware.RequireAuth())
		{
			cycles.GET("/:id/status", statusHandler.CycleStatus)
			cycles.GET("/:id/not-submitted", statusHandler.NotSubmittedMembers)
		}

		api.GET("/reminders", middleware.RequireAuth(), statusHandler.ReminderTargets)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
