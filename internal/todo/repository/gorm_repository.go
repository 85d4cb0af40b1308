package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo-backend/internal/todo/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM-based TodoRepository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *gormTodoRepository) FindByOwner(ctx context.Context, owner string, status *domain.Status) ([]*domain.Todo, error) {
	todos := []*domain.Todo{}

	query := r.db.WithContext(ctx).Where("owner_email = ?", owner)
	if status != nil {
		query = query.Where("completed = ?", *status == domain.StatusCompleted)
	}

	// Due-dated todos first by due date, undated ones last in insertion order
	err := query.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (r *gormTodoRepository) Toggle(ctx context.Context, owner string, id uint) (*domain.Todo, error) {
	var todo *domain.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findOwned(tx.Clauses(clause.Locking{Strength: "UPDATE"}), owner, id)
		if err != nil {
			return err
		}

		found.Completed = !found.Completed
		found.UpdatedAt = time.Now()
		if err := updateOwned(tx, owner, id, map[string]interface{}{
			"completed":  found.Completed,
			"updated_at": found.UpdatedAt,
		}); err != nil {
			return err
		}
		todo = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *gormTodoRepository) Update(ctx context.Context, owner string, id uint, title string, dueDate *time.Time) (*domain.Todo, error) {
	var todo *domain.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findOwned(tx.Clauses(clause.Locking{Strength: "UPDATE"}), owner, id)
		if err != nil {
			return err
		}

		found.Title = title
		found.DueDate = dueDate
		found.UpdatedAt = time.Now()
		if err := updateOwned(tx, owner, id, map[string]interface{}{
			"title":      found.Title,
			"due_date":   found.DueDate,
			"updated_at": found.UpdatedAt,
		}); err != nil {
			return err
		}
		todo = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, owner string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, owner).
		Delete(&domain.Todo{})
	if result.Error != nil {
		return fmt.Errorf("delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func findOwned(db *gorm.DB, owner string, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := db.Where("id = ? AND owner_email = ?", id, owner).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

// updateOwned writes through the owner scope again so a row deleted since the
// fetch surfaces as ErrTodoNotFound instead of a silent no-op.
func updateOwned(tx *gorm.DB, owner string, id uint, values map[string]interface{}) error {
	result := tx.Model(&domain.Todo{}).
		Where("id = ? AND owner_email = ?", id, owner).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
