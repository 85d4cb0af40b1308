package repository

import (
	"context"
	"time"

	"todo-backend/internal/todo/domain"
)

// TodoRepository defines owner-scoped data access for todos.
// Every method takes the owner; a todo belonging to anyone else behaves as
// if it did not exist and yields domain.ErrTodoNotFound.
type TodoRepository interface {
	// Create inserts a new todo for its OwnerEmail
	Create(ctx context.Context, todo *domain.Todo) error

	// FindByOwner lists the owner's todos: due-dated first by due date, then undated by insertion
	FindByOwner(ctx context.Context, owner string, status *domain.Status) ([]*domain.Todo, error)

	// Toggle flips the completed flag
	Toggle(ctx context.Context, owner string, id uint) (*domain.Todo, error)

	// Update overwrites title and due date
	Update(ctx context.Context, owner string, id uint, title string, dueDate *time.Time) (*domain.Todo, error)

	// Delete permanently removes a todo
	Delete(ctx context.Context, owner string, id uint) error
}
