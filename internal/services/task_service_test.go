package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage/memory"
)

func newTestTaskService() TaskService {
	return NewTaskService(zerolog.Nop(), memory.New(zerolog.Nop()))
}

func createParams(userID, title string) CreateTaskParams {
	return CreateTaskParams{
		UserID:      userID,
		Title:       title,
		Description: "description",
		Type:        "personal",
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
	}
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	expireDate := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	params := createParams("alice", "  groceries  ")
	params.ExpireDate = &expireDate
	params.Time = strPtr("10:30")

	task, err := tasks.CreateTask(ctx, params)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "alice", task.UserID)
	assert.Equal(t, "groceries", task.Title)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, &expireDate, task.ExpireDate)
	assert.Equal(t, strPtr("10:30"), task.Time)
	assert.False(t, task.CreatedAt.IsZero())

	found, err := tasks.GetTask(ctx, "alice", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, found.Title)
}

func TestTaskService_CreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	params := createParams("alice", "groceries")
	params.Status = ""
	params.Priority = ""

	task, err := tasks.CreateTask(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultStatus, task.Status)
	assert.Equal(t, models.DefaultPriority, task.Priority)
	assert.Nil(t, task.ExpireDate)
	assert.Nil(t, task.Time)
}

func TestTaskService_CreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	params := createParams("alice", "   ")
	_, err := tasks.CreateTask(ctx, params)
	assert.ErrorIs(t, err, ErrTaskFieldRequired)

	params = createParams("alice", "groceries")
	params.Type = ""
	_, err = tasks.CreateTask(ctx, params)
	assert.ErrorIs(t, err, ErrTaskFieldRequired)

	params = createParams("alice", "groceries")
	params.Status = "pending"
	_, err = tasks.CreateTask(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	params = createParams("alice", "groceries")
	params.Priority = "medium"
	_, err = tasks.CreateTask(ctx, params)
	assert.ErrorIs(t, err, ErrInvalidTaskPriority)
}

func TestTaskService_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	seen := make(map[string]struct{})
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		task, err := tasks.CreateTask(ctx, createParams("alice", title))
		require.NoError(t, err)
		_, dup := seen[task.ID]
		require.False(t, dup)
		seen[task.ID] = struct{}{}
	}
}

func TestTaskService_DuplicateTitlePerOwner(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	_, err := tasks.CreateTask(ctx, createParams("alice", "groceries"))
	require.NoError(t, err)

	_, err = tasks.CreateTask(ctx, createParams("alice", "groceries"))
	assert.ErrorIs(t, err, ErrTaskTitleTaken)

	_, err = tasks.CreateTask(ctx, createParams("bob", "groceries"))
	assert.NoError(t, err)
}

func TestTaskService_UpdateTaskPartial(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	expireDate := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	params := createParams("alice", "groceries")
	params.ExpireDate = &expireDate
	params.Time = strPtr("10:30")
	created, err := tasks.CreateTask(ctx, params)
	require.NoError(t, err)

	updated, err := tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:     created.ID,
		UserID: "alice",
		Status: strPtr(models.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.ExpireDate, updated.ExpireDate)
	assert.Equal(t, created.Time, updated.Time)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestTaskService_UpdateTaskClearsOptionalFields(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	expireDate := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	params := createParams("alice", "groceries")
	params.ExpireDate = &expireDate
	params.Time = strPtr("10:30")
	created, err := tasks.CreateTask(ctx, params)
	require.NoError(t, err)

	updated, err := tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:              created.ID,
		UserID:          "alice",
		Description:     strPtr(""),
		Time:            strPtr(""),
		ClearExpireDate: true,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
	assert.Nil(t, updated.Time)
	assert.Nil(t, updated.ExpireDate)

	found, err := tasks.GetTask(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Description)
	assert.Nil(t, found.Time)
	assert.Nil(t, found.ExpireDate)
}

func TestTaskService_UpdateTaskRejectsInvalidValues(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	created, err := tasks.CreateTask(ctx, createParams("alice", "groceries"))
	require.NoError(t, err)

	_, err = tasks.UpdateTask(ctx, UpdateTaskParams{ID: created.ID, UserID: "alice", Title: strPtr("")})
	assert.ErrorIs(t, err, ErrTaskFieldRequired)

	_, err = tasks.UpdateTask(ctx, UpdateTaskParams{ID: created.ID, UserID: "alice", Priority: strPtr("Urgent")})
	assert.ErrorIs(t, err, ErrInvalidTaskPriority)

	found, err := tasks.GetTask(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", found.Title)
	assert.Equal(t, models.PriorityHigh, found.Priority)
}

func TestTaskService_UpdateTaskTitleConflict(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	_, err := tasks.CreateTask(ctx, createParams("alice", "groceries"))
	require.NoError(t, err)
	second, err := tasks.CreateTask(ctx, createParams("alice", "laundry"))
	require.NoError(t, err)

	_, err = tasks.UpdateTask(ctx, UpdateTaskParams{ID: second.ID, UserID: "alice", Title: strPtr("groceries")})
	assert.ErrorIs(t, err, ErrTaskTitleTaken)
}

func TestTaskService_UpdateTaskNotFound(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	created, err := tasks.CreateTask(ctx, createParams("alice", "groceries"))
	require.NoError(t, err)

	_, err = tasks.UpdateTask(ctx, UpdateTaskParams{ID: "missing", UserID: "alice", Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = tasks.UpdateTask(ctx, UpdateTaskParams{ID: created.ID, UserID: "bob", Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	created, err := tasks.CreateTask(ctx, createParams("alice", "groceries"))
	require.NoError(t, err)

	err = tasks.DeleteTask(ctx, DeleteTaskParams{ID: created.ID, UserID: "bob"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	require.NoError(t, tasks.DeleteTask(ctx, DeleteTaskParams{ID: created.ID, UserID: "alice"}))

	_, err = tasks.GetTask(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_GetTasksByUserID(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	first, err := tasks.CreateTask(ctx, createParams("alice", "first"))
	require.NoError(t, err)
	second, err := tasks.CreateTask(ctx, createParams("alice", "second"))
	require.NoError(t, err)

	list, err := tasks.GetTasksByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	list, err = tasks.GetTasksByUserID(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaskService_GetTasksByUserIDKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	const count = 200
	created := make([]string, 0, count)
	for i := range count {
		task, err := tasks.CreateTask(ctx, createParams("alice", fmt.Sprintf("task %d", i)))
		require.NoError(t, err)
		created = append(created, task.ID)
	}

	list, err := tasks.GetTasksByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, count)
	for i, task := range list {
		require.Equal(t, created[count-1-i], task.ID, "position %d", i)
	}
}

func TestTaskService_ValidationErrorsNameTheField(t *testing.T) {
	ctx := context.Background()
	tasks := newTestTaskService()

	params := createParams("alice", "groceries")
	params.Status = "Done"
	_, err := tasks.CreateTask(ctx, params)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "status", fieldErr.Field)
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	params = createParams("alice", "groceries")
	params.Type = " "
	_, err = tasks.CreateTask(ctx, params)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "type", fieldErr.Field)
}
