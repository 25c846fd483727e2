// Package memory is a map-backed storage used for local runs and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

type Storage struct {
	logger zerolog.Logger

	mu           sync.RWMutex
	users        map[string]*models.User      // email -> user
	tasks        map[string]*models.Task      // task id -> task
	tasksByOwner map[string]map[string]string // user id -> title -> task id
}

func New(logger zerolog.Logger) *Storage {
	return &Storage{
		logger:       logger,
		users:        make(map[string]*models.User),
		tasks:        make(map[string]*models.Task),
		tasksByOwner: make(map[string]map[string]string),
	}
}

func (s *Storage) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		s.logger.Debug().
			Str("email", user.Email).
			Msg("user already exists")
		return storage.ErrUserExists
	}

	stored := *user
	s.users[user.Email] = &stored
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("inserted user")
	return nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[email]
	if !exists {
		return nil, storage.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func (s *Storage) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := s.tasksByOwner[task.UserID]
	if _, taken := titles[task.Title]; taken {
		return storage.ErrTaskTitleTaken
	}
	if titles == nil {
		titles = make(map[string]string)
		s.tasksByOwner[task.UserID] = titles
	}

	stored := copyTask(task)
	s.tasks[task.ID] = stored
	titles[task.Title] = task.ID
	s.logger.Debug().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("inserted task")
	return nil
}

func (s *Storage) GetTask(_ context.Context, userID, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, storage.ErrTaskNotFound
	}
	return copyTask(task), nil
}

func (s *Storage) GetTasksByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := s.tasksByOwner[userID]
	tasks := make([]*models.Task, 0, len(titles))
	for _, taskID := range titles {
		tasks = append(tasks, copyTask(s.tasks[taskID]))
	}

	slices.SortFunc(tasks, func(a, b *models.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return tasks, nil
}

func (s *Storage) UpdateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.tasks[task.ID]
	if !exists || current.UserID != task.UserID {
		return storage.ErrTaskNotFound
	}

	titles := s.tasksByOwner[task.UserID]
	if takenBy, taken := titles[task.Title]; taken && takenBy != task.ID {
		return storage.ErrTaskTitleTaken
	}

	delete(titles, current.Title)
	titles[task.Title] = task.ID

	updated := copyTask(task)
	updated.CreatedAt = current.CreatedAt
	s.tasks[task.ID] = updated
	return nil
}

func (s *Storage) DeleteTask(_ context.Context, userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return storage.ErrTaskNotFound
	}

	delete(s.tasksByOwner[userID], task.Title)
	delete(s.tasks, taskID)
	return nil
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) Close(context.Context) error {
	return nil
}

func copyTask(task *models.Task) *models.Task {
	c := *task
	if task.ExpireDate != nil {
		expireDate := *task.ExpireDate
		c.ExpireDate = &expireDate
	}
	if task.Time != nil {
		t := *task.Time
		c.Time = &t
	}
	return &c
}
