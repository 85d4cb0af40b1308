package api

import (
	"net/http"

	"todo-backend/internal/auth/delivery"
	authUsecase "todo-backend/internal/auth/usecase"
	todoDelivery "todo-backend/internal/todo/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, todoHandler *todoDelivery.TodoHandler) {
	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	// Profile routes (protected)
	me := r.Group("/me")
	me.Use(delivery.AuthMiddleware(authUsecase))
	{
		me.GET("", authHandler.Me)
		me.PUT("", authHandler.UpdateMe)
	}

	// Todo routes (protected)
	todos := r.Group("/todos")
	todos.Use(delivery.AuthMiddleware(authUsecase))
	{
		todos.GET("", todoHandler.GetTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.PUT("/:id", todoHandler.ToggleTodo)
		todos.PUT("/:id/edit", todoHandler.EditTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}
}
