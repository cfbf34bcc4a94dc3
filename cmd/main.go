package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/daniil-kharaman/movie-web-app/internal/config"
	"github.com/daniil-kharaman/movie-web-app/internal/database"
	"github.com/daniil-kharaman/movie-web-app/internal/genai"
	"github.com/daniil-kharaman/movie-web-app/internal/handler"
	"github.com/daniil-kharaman/movie-web-app/internal/middleware"
	"github.com/daniil-kharaman/movie-web-app/internal/omdb"
	"github.com/daniil-kharaman/movie-web-app/internal/repository"
	"github.com/daniil-kharaman/movie-web-app/internal/service"
	"github.com/daniil-kharaman/movie-web-app/internal/session"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal; rate limiting fails open without it)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without rate limiting", "error", err)
	}

	// External API clients
	metadataClient := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
	chatClient := genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.BaseURL, cfg.GenAI.Model)

	// Recommendation session store
	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	defer sessions.Close()

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	librarySvc := service.NewLibraryService(userRepo, movieRepo, metadataClient)
	recommendSvc := service.NewRecommendationService(
		userRepo, movieRepo, metadataClient,
		func(instructions string) session.Chat { return chatClient.NewChat(instructions) },
		sessions, cfg.GenAI.PromptPath,
	)

	userHandler := handler.NewUserHandler(librarySvc)
	movieHandler := handler.NewMovieHandler(librarySvc)
	recommendHandler := handler.NewRecommendationHandler(recommendSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Web App",
		ServerHeader: "Movie-Web-App",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	app.Use(rateLimiter.Handler())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// Landing page
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "movie-web-app",
			"docs":    "/swagger/",
		})
	})

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", userHandler.Health)
	api.Get("/users", userHandler.ListUsers)
	api.Post("/users", userHandler.CreateUser)
	api.Put("/users/:id", userHandler.RenameUser)
	api.Delete("/users/:id", userHandler.DeleteUser)
	api.Get("/users/:id/movies", movieHandler.ListMovies)
	api.Post("/users/:id/movies", movieHandler.AddMovie)
	api.Post("/users/:id/movies/recommended", movieHandler.AddMovie)
	api.Get("/users/:id/movies/:movie_id", movieHandler.GetMovie)
	api.Put("/users/:id/movies/:movie_id", movieHandler.UpdateMovie)
	api.Delete("/users/:id/movies/:movie_id", movieHandler.DeleteMovie)
	api.Get("/users/:id/recommendations", recommendHandler.OpenSession)
	api.Post("/users/:id/recommendations", recommendHandler.Recommend)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie web app...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie web app", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
