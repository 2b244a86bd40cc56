package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizdeck/internal/adapter"
	"quizdeck/internal/adapter/pdfextract"
	"quizdeck/internal/adapter/quizgen"
	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/handler"
	"quizdeck/internal/logger"
	"quizdeck/internal/middleware"
	"quizdeck/internal/repository"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize LLM client
	llm, err := quizgen.NewLLMFromConfig(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err), zap.String("source", cfg.LLM.Source))
	}
	appLogger.Info("LLM client initialized", zap.String("source", cfg.LLM.Source))

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations("file://migrations", cfg.GetDSN()); err != nil {
			appLogger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		appLogger.Info("Migrations applied")
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	quizRepository := repository.NewSQLXQuizRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize PDF pipeline adapters
	extractor := pdfextract.NewExtractor()
	generator := quizgen.NewLLMQuestionGenerator(llm, cfg.Quiz.NumQuestions)

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(quizRepository, extractor, generator, cacheAdapter, cfg)
	resultService := service.NewResultService(resultRepository, quizRepository, userRepository)

	// Initialize handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService, validator)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	resultHandler := handler.NewResultHandler(resultService, validator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.MaxUploadSize,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Quiz routes
	quizGroup := apiGroup.Group("/quiz", middleware.Protected(authService))
	quizGroup.Post("/create", middleware.FacultyOnly(), quizHandler.Create)
	quizGroup.Get("/faculty", middleware.FacultyOnly(), quizHandler.FacultyQuizzes)
	quizGroup.Get("/student", quizHandler.StudentQuizzes)
	quizGroup.Get("/:id", quizHandler.GetByID)
	quizGroup.Delete("/:id", middleware.FacultyOnly(), quizHandler.Delete)

	// Result routes
	resultGroup := apiGroup.Group("/results", middleware.Protected(authService))
	resultGroup.Post("/submit", resultHandler.Submit)
	resultGroup.Get("/score/:id", resultHandler.Score)
	resultGroup.Get("/student/:quizId", resultHandler.StudentResult)
	resultGroup.Get("/faculty/quiz/:quizId", middleware.FacultyOnly(), resultHandler.QuizResults)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
