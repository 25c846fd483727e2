package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/go-todo-api/internal/storage"
)

func TestUniqueViolation(t *testing.T) {
	constraint, ok := uniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: tasksUserIDTitleConstraint,
	}))
	assert.True(t, ok)
	assert.Equal(t, tasksUserIDTitleConstraint, constraint)

	_, ok = uniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
	assert.False(t, ok)

	_, ok = uniqueViolation(errors.New("duplicate key value violates unique constraint"))
	assert.False(t, ok)
}

func TestMapTaskWriteError(t *testing.T) {
	err := mapTaskWriteError("failed to create task", &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: tasksUserIDTitleConstraint,
	})
	assert.ErrorIs(t, err, storage.ErrTaskTitleTaken)

	pkErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "tasks_pkey"}
	err = mapTaskWriteError("failed to create task", pkErr)
	assert.NotErrorIs(t, err, storage.ErrTaskTitleTaken)
	assert.ErrorIs(t, err, pkErr)
	assert.Contains(t, err.Error(), "failed to create task")
}
