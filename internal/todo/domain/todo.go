package domain

import (
	"errors"
	"time"
)

var (
	// ErrTodoNotFound covers both missing todos and todos owned by someone else.
	ErrTodoNotFound  = errors.New("todo not found")
	ErrEmptyTitle    = errors.New("title is required")
	ErrInvalidStatus = errors.New("status must be completed or pending")
)

// Status filters a todo listing by completion
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// Todo is a to-do item owned by exactly one user
type Todo struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"not null"`
	Completed  bool       `json:"completed" gorm:"not null;default:false"`
	DueDate    *time.Time `json:"due_date"`
	OwnerEmail string     `json:"-" gorm:"index;not null"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

// ListFilter narrows a listing without changing its order
type ListFilter struct {
	Status *Status
	Query  string
}
