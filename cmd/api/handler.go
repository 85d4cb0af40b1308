package api

import (
	authDelivery "todo-backend/internal/auth/delivery"
	authUsecase "todo-backend/internal/auth/usecase"
	todoDelivery "todo-backend/internal/todo/delivery"
	todoUsecasePkg "todo-backend/internal/todo/usecase"
	"todo-backend/pkg/config"
	"todo-backend/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	config      *config.Config
	authHandler *authDelivery.AuthHandler
	todoHandler *todoDelivery.TodoHandler
}

func NewHandler(authUc authUsecase.AuthUsecase, todoUc todoUsecasePkg.TodoUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		config:      cfg,
		authHandler: authDelivery.NewAuthHandler(authUc),
		todoHandler: todoDelivery.NewTodoHandler(todoUc),
	}
}

// Router builds the gin engine with middleware and routes.
func (h *Handler) Router() *gin.Engine {
	if !h.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	if telemetry.Enabled(h.config) {
		r.Use(otelgin.Middleware(telemetry.ServiceName))
	}

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := h.config.CORSAllowedOrigin
		if origin == "" {
			origin = c.Request.Header.Get("Origin")
		}
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.todoHandler)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Router().Run(addr)
}
