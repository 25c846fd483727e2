package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/metrics"
	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStorage
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStorage,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	// Version 7 ids grow monotonically within the process, so they
	// order tasks created in the same millisecond.
	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	task := &models.Task{
		ID:          taskUUID.String(),
		UserID:      params.UserID,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Type:        strings.TrimSpace(params.Type),
		Status:      strings.TrimSpace(params.Status),
		Priority:    strings.TrimSpace(params.Priority),
		ExpireDate:  params.ExpireDate,
		Time:        trimOptional(params.Time),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.DefaultStatus
	}
	if task.Priority == "" {
		task.Priority = models.DefaultPriority
	}

	err = validateTask(task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task")
		return nil, err
	}

	err = s.tasks.CreateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrTaskTitleTaken) {
			s.logger.Error().
				Str("user_id", task.UserID).
				Str("title", task.Title).
				Msg("task with this title already exists")
			return nil, ErrTaskTitleTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	metrics.IncrementTaskOperation(metrics.TaskCreate)
	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("task found")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.tasks.GetTasksByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("tasks found")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTask(ctx, params.UserID, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.Type != nil {
		task.Type = strings.TrimSpace(*params.Type)
	}
	if params.Status != nil {
		task.Status = strings.TrimSpace(*params.Status)
	}
	if params.Priority != nil {
		task.Priority = strings.TrimSpace(*params.Priority)
	}
	if params.ClearExpireDate {
		task.ExpireDate = nil
	} else if params.ExpireDate != nil {
		task.ExpireDate = params.ExpireDate
	}
	if params.Time != nil {
		task.Time = trimOptional(params.Time)
	}

	err = validateTask(task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("invalid task update")
		return nil, err
	}
	task.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	err = s.tasks.UpdateTask(ctx, task)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTaskNotFound):
			s.logger.Error().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		case errors.Is(err, storage.ErrTaskTitleTaken):
			s.logger.Error().
				Str("task_id", task.ID).
				Str("title", task.Title).
				Msg("task with this title already exists")
			return nil, ErrTaskTitleTaken
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	metrics.IncrementTaskOperation(metrics.TaskUpdate)
	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	err := s.tasks.DeleteTask(ctx, params.UserID, params.ID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", params.ID).
				Str("user_id", params.UserID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}

	metrics.IncrementTaskOperation(metrics.TaskDelete)
	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func validateTask(task *models.Task) error {
	switch {
	case task.Title == "":
		return &FieldError{Field: "title", Err: ErrTaskFieldRequired}
	case task.Type == "":
		return &FieldError{Field: "type", Err: ErrTaskFieldRequired}
	case !models.IsValidStatus(task.Status):
		return &FieldError{Field: "status", Err: ErrInvalidTaskStatus}
	case !models.IsValidPriority(task.Priority):
		return &FieldError{Field: "priority", Err: ErrInvalidTaskPriority}
	}
	return nil
}

// trimOptional trims the value and maps an empty result to nil.
func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
