package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-todo-api/internal/models"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTitleTaken      = errors.New("task with this title already exists")
	ErrTaskFieldRequired   = errors.New("task field is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// FieldError names the task field that failed validation. It unwraps
// to ErrTaskFieldRequired, ErrInvalidTaskStatus or ErrInvalidTaskPriority.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Err.Error() + ": " + e.Field
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Identity is the set of claims carried by an auth token.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

type TokenService interface {
	// Issue signs a token carrying the given identity.
	Issue(identity Identity) (string, error)

	// Verify checks the token signature and returns the identity it
	// carries. Every failure is reported as ErrInvalidToken.
	Verify(token string) (*Identity, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare reports whether the password matches the encoded hash.
	// A mismatch is not an error.
	Compare(password, hash string) (bool, error)
}

type AuthService interface {
	// Signup creates a user with a hashed password and issues a token.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Signup(ctx context.Context, params SignupParams) (*AuthResult, error)

	// Login verifies the credentials and issues a token.
	//
	// It returns ErrInvalidCredentials both for an unknown email
	// and for a wrong password.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
}

type TaskService interface {
	// CreateTask returns ErrTaskTitleTaken if the owner already
	// has a task with the same title.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)

	// GetTasksByUserID returns the owner's tasks, newest first.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask applies the fields present in params. It returns
	// ErrTaskNotFound if the owner has no task with the given ID.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type SignupParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	Identity
	Token string
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
	Type        string
	Status      string
	Priority    string
	ExpireDate  *time.Time
	Time        *string
}

// UpdateTaskParams describes a partial update. Nil fields are left
// unchanged.
type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	Type        *string
	Status      *string
	Priority    *string
	ExpireDate  *time.Time
	Time        *string

	// ClearExpireDate removes the expire date. It takes
	// precedence over ExpireDate.
	ClearExpireDate bool
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
