package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   type,
                   status,
                   priority,
                   expire_date,
                   due_time,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Type,
		task.Status,
		task.Priority,
		task.ExpireDate,
		task.Time,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return mapTaskWriteError("failed to insert task", err)
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task := &models.Task{
		ID:     taskID,
		UserID: userID,
	}

	const selectTaskQuery = `
SELECT title,
       description,
       type,
       status,
       priority,
       expire_date,
       due_time,
       created_at,
       updated_at
FROM tasks
WHERE id = $1 AND user_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Type,
		&task.Status,
		&task.Priority,
		&task.ExpireDate,
		&task.Time,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("selected task")
	return task, nil
}

func (s *Storage) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       type,
       status,
       priority,
       expire_date,
       due_time,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC, id COLLATE "C" DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks by user id: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Type,
			&task.Status,
			&task.Priority,
			&task.ExpireDate,
			&task.Time,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    type = $3,
    status = $4,
    priority = $5,
    expire_date = $6,
    due_time = $7,
    updated_at = $8
WHERE id = $9 AND user_id = $10
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Type,
		task.Status,
		task.Priority,
		task.ExpireDate,
		task.Time,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return mapTaskWriteError("failed to update task", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")
	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID, taskID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func mapTaskWriteError(msg string, err error) error {
	if constraint, ok := uniqueViolation(err); ok && constraint == tasksUserIDTitleConstraint {
		return storage.ErrTaskTitleTaken
	}
	return fmt.Errorf("%s: %w", msg, err)
}
