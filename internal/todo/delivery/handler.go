package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	authdelivery "todo-backend/internal/auth/delivery"
	"todo-backend/internal/todo/domain"
	"todo-backend/internal/todo/usecase"

	"github.com/gin-gonic/gin"
)

var errInvalidDueDate = errors.New("due_date must be an ISO 8601 date or date-time")

// Layouts accepted for due_date, most specific first. Zone-less values are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoUsecase usecase.TodoUsecase
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoUsecase usecase.TodoUsecase) *TodoHandler {
	return &TodoHandler{
		todoUsecase: todoUsecase,
	}
}

// TodoRequest is the body for creating and editing a todo
type TodoRequest struct {
	Title   string  `json:"title" binding:"required"`
	DueDate *string `json:"due_date"`
}

// GetTodos returns the caller's todos
// GET /todos?status=pending&q=milk
func (h *TodoHandler) GetTodos(c *gin.Context) {
	owner := authdelivery.SubjectFromContext(c)

	filter := domain.ListFilter{Query: c.Query("q")}
	if status := c.Query("status"); status != "" {
		s := domain.Status(strings.ToLower(status))
		filter.Status = &s
	}

	todos, err := h.todoUsecase.ListTodos(c.Request.Context(), owner, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

// CreateTodo adds a todo for the caller
// POST /todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	owner := authdelivery.SubjectFromContext(c)

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[Todo] %s %s bad request: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.todoUsecase.CreateTodo(c.Request.Context(), owner, req.Title, dueDate); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo added"})
}

// ToggleTodo flips the completed flag
// PUT /todos/:id
func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	owner := authdelivery.SubjectFromContext(c)
	id, ok := todoID(c)
	if !ok {
		return
	}

	if _, err := h.todoUsecase.ToggleTodo(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo updated"})
}

// EditTodo overwrites title and due date
// PUT /todos/:id/edit
func (h *TodoHandler) EditTodo(c *gin.Context) {
	owner := authdelivery.SubjectFromContext(c)
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[Todo] %s %s bad request: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.todoUsecase.EditTodo(c.Request.Context(), owner, id, req.Title, dueDate); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo updated"})
}

// DeleteTodo removes a todo
// DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	owner := authdelivery.SubjectFromContext(c)
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todoUsecase.DeleteTodo(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

func todoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return 0, false
	}
	return uint(id), true
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errInvalidDueDate
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrTodoNotFound.Error()})
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, errInvalidDueDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[Todo] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
