package memory

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

func newTask(id, userID, title string, createdAt time.Time) *models.Task {
	return &models.Task{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Type:      "work",
		Status:    models.DefaultStatus,
		Priority:  models.DefaultPriority,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())

	user := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))

	err := s.CreateUser(ctx, &models.User{ID: "u2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, storage.ErrUserExists)

	found, err := s.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)
	assert.Equal(t, "alice", found.Username)

	_, err = s.GetUserByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_TaskTitleIsUniquePerOwner(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())
	now := time.Now()

	require.NoError(t, s.CreateTask(ctx, newTask("t1", "a", "groceries", now)))
	err := s.CreateTask(ctx, newTask("t2", "a", "groceries", now))
	assert.ErrorIs(t, err, storage.ErrTaskTitleTaken)
	require.NoError(t, s.CreateTask(ctx, newTask("t3", "b", "groceries", now)))
}

func TestStorage_GetTaskIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())

	require.NoError(t, s.CreateTask(ctx, newTask("t1", "a", "groceries", time.Now())))

	task, err := s.GetTask(ctx, "a", "t1")
	require.NoError(t, err)
	assert.Equal(t, "groceries", task.Title)

	_, err = s.GetTask(ctx, "b", "t1")
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestStorage_GetTasksByUserIDNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())
	now := time.Now()

	require.NoError(t, s.CreateTask(ctx, newTask("t1", "a", "first", now)))
	require.NoError(t, s.CreateTask(ctx, newTask("t2", "a", "second", now.Add(time.Second))))
	require.NoError(t, s.CreateTask(ctx, newTask("t3", "b", "other", now.Add(2*time.Second))))

	tasks, err := s.GetTasksByUserID(ctx, "a")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t2", tasks[0].ID)
	assert.Equal(t, "t1", tasks[1].ID)

	tasks, err = s.GetTasksByUserID(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStorage_UpdateTask(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())
	now := time.Now()

	require.NoError(t, s.CreateTask(ctx, newTask("t1", "a", "first", now)))
	require.NoError(t, s.CreateTask(ctx, newTask("t2", "a", "second", now)))

	renamed := newTask("t1", "a", "renamed", now.Add(time.Hour))
	require.NoError(t, s.UpdateTask(ctx, renamed))

	task, err := s.GetTask(ctx, "a", "t1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	assert.True(t, task.CreatedAt.Equal(now), "creation time must not change")

	// The old title is free again.
	require.NoError(t, s.CreateTask(ctx, newTask("t3", "a", "first", now)))

	err = s.UpdateTask(ctx, newTask("t1", "a", "second", now))
	assert.ErrorIs(t, err, storage.ErrTaskTitleTaken)

	err = s.UpdateTask(ctx, newTask("t1", "b", "whatever", now))
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestStorage_DeleteTask(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())

	require.NoError(t, s.CreateTask(ctx, newTask("t1", "a", "first", time.Now())))

	assert.ErrorIs(t, s.DeleteTask(ctx, "b", "t1"), storage.ErrTaskNotFound)
	require.NoError(t, s.DeleteTask(ctx, "a", "t1"))
	assert.ErrorIs(t, s.DeleteTask(ctx, "a", "t1"), storage.ErrTaskNotFound)

	_, err := s.GetTask(ctx, "a", "t1")
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New(zerolog.Nop())

	tm := "10:00"
	task := newTask("t1", "a", "first", time.Now())
	task.Time = &tm
	require.NoError(t, s.CreateTask(ctx, task))

	found, err := s.GetTask(ctx, "a", "t1")
	require.NoError(t, err)
	*found.Time = "11:00"
	found.Title = "mutated"

	again, err := s.GetTask(ctx, "a", "t1")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)
	assert.Equal(t, "10:00", *again.Time)
}
