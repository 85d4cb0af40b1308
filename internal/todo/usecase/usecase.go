package usecase

import (
	"context"
	"time"

	"todo-backend/internal/todo/domain"
)

// TodoUsecase defines the interface for todo business logic.
// owner is always the authenticated caller.
type TodoUsecase interface {
	// CreateTodo adds a todo for the owner
	CreateTodo(ctx context.Context, owner, title string, dueDate *time.Time) (*domain.Todo, error)

	// ListTodos returns the owner's todos, optionally filtered
	ListTodos(ctx context.Context, owner string, filter domain.ListFilter) ([]*domain.Todo, error)

	// ToggleTodo flips completion
	ToggleTodo(ctx context.Context, owner string, id uint) (*domain.Todo, error)

	// EditTodo overwrites title and due date
	EditTodo(ctx context.Context, owner string, id uint, title string, dueDate *time.Time) (*domain.Todo, error)

	// DeleteTodo removes a todo
	DeleteTodo(ctx context.Context, owner string, id uint) error
}
