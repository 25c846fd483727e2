package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

func ownerScope(userID, taskID string) bson.M {
	return bson.M{"_id": taskID, "userId": userID}
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	_, err := s.tasks.InsertOne(ctx, task)
	if err != nil {
		if isDuplicateKey(err, tasksUserIDTitleIndex) {
			return storage.ErrTaskTitleTaken
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task := new(models.Task)
	err := s.tasks.FindOne(ctx, ownerScope(userID, taskID)).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("found task")
	return task, nil
}

func (s *Storage) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := s.tasks.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by user id: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	tasks := make([]*models.Task, 0)
	for cursor.Next(ctx) {
		task := new(models.Task)
		err = cursor.Decode(task)
		if err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = cursor.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over cursor: %w", err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("found tasks by user id")
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"type":        task.Type,
		"status":      task.Status,
		"priority":    task.Priority,
		"expireDate":  task.ExpireDate,
		"time":        task.Time,
		"updatedAt":   task.UpdatedAt,
	}}
	result, err := s.tasks.UpdateOne(ctx, ownerScope(task.UserID, task.ID), update)
	if err != nil {
		if isDuplicateKey(err, tasksUserIDTitleIndex) {
			return storage.ErrTaskTitleTaken
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")
	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID, taskID string) error {
	result, err := s.tasks.DeleteOne(ctx, ownerScope(userID, taskID))
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}
