// Package storage defines the persistence contracts shared by the
// Postgres, Mongo and in-memory backends.
package storage

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-todo-api/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrTaskNotFound   = errors.New("task not found")
	ErrTaskTitleTaken = errors.New("task title already taken")
	ErrUnknownDriver  = errors.New("unknown storage driver")
)

type UserStorage interface {
	// CreateUser inserts the user. It returns ErrUserExists if
	// a user with the same email is already stored.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrUserNotFound if there is no such user.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskStorage methods are owner-scoped: every lookup filters by
// both the task ID and the owner's user ID.
type TaskStorage interface {
	// CreateTask returns ErrTaskTitleTaken if the owner
	// already has a task with the same title.
	CreateTask(ctx context.Context, task *models.Task) error

	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)

	// GetTasksByUserID returns the owner's tasks, newest first.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask overwrites the mutable fields of the task identified by
	// task.ID and task.UserID. It returns ErrTaskNotFound or
	// ErrTaskTitleTaken.
	UpdateTask(ctx context.Context, task *models.Task) error

	DeleteTask(ctx context.Context, userID, taskID string) error
}

type Storage interface {
	UserStorage
	TaskStorage

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
