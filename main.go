package main

import (
	"context"
	"log"

	api "todo-backend/cmd/api"
	authdomain "todo-backend/internal/auth/domain"
	authRepo "todo-backend/internal/auth/repository"
	"todo-backend/internal/auth/token"
	authUsecase "todo-backend/internal/auth/usecase"
	tododomain "todo-backend/internal/todo/domain"
	todoRepo "todo-backend/internal/todo/repository"
	todoUsecase "todo-backend/internal/todo/usecase"
	"todo-backend/pkg/config"
	"todo-backend/pkg/database"
	"todo-backend/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Tracing is a no-op unless OTEL_ENABLED and OTEL_ENDPOINT are set
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("[Telemetry] shutdown: %v", err)
		}
	}()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &tododomain.Todo{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	hasher := authRepo.NewBcryptHasher(cfg.BcryptCost)
	todoRepository := todoRepo.NewGormTodoRepository(db)

	// Initialize use cases (dependency injection)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTAccessExpiry, nil)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, hasher, issuer)
	todoUsecaseInstance := todoUsecase.NewTodoUsecase(todoRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, todoUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
