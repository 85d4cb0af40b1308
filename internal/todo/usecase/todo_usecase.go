package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"todo-backend/internal/todo/domain"
	"todo-backend/internal/todo/repository"
	"todo-backend/pkg/fuzzy"
)

// todoUsecase implements TodoUsecase interface
type todoUsecase struct {
	todoRepo repository.TodoRepository
}

// NewTodoUsecase creates a new instance of todoUsecase
func NewTodoUsecase(todoRepo repository.TodoRepository) TodoUsecase {
	return &todoUsecase{
		todoRepo: todoRepo,
	}
}

func (u *todoUsecase) CreateTodo(ctx context.Context, owner, title string, dueDate *time.Time) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	todo := &domain.Todo{
		Title:      title,
		DueDate:    utc(dueDate),
		OwnerEmail: owner,
	}
	if err := u.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}

	log.Printf("[Todo] Created todo %d", todo.ID)
	return todo, nil
}

func (u *todoUsecase) ListTodos(ctx context.Context, owner string, filter domain.ListFilter) ([]*domain.Todo, error) {
	if filter.Status != nil {
		switch *filter.Status {
		case domain.StatusCompleted, domain.StatusPending:
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	todos, err := u.todoRepo.FindByOwner(ctx, owner, filter.Status)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(filter.Query)
	if query == "" {
		return todos, nil
	}

	matched := make([]*domain.Todo, 0, len(todos))
	for _, todo := range todos {
		if fuzzy.MatchTitle(query, todo.Title) {
			matched = append(matched, todo)
		}
	}
	return matched, nil
}

func (u *todoUsecase) ToggleTodo(ctx context.Context, owner string, id uint) (*domain.Todo, error) {
	return u.todoRepo.Toggle(ctx, owner, id)
}

func (u *todoUsecase) EditTodo(ctx context.Context, owner string, id uint, title string, dueDate *time.Time) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	return u.todoRepo.Update(ctx, owner, id, title, utc(dueDate))
}

func (u *todoUsecase) DeleteTodo(ctx context.Context, owner string, id uint) error {
	if err := u.todoRepo.Delete(ctx, owner, id); err != nil {
		return err
	}
	log.Printf("[Todo] Deleted todo %d", id)
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
