package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if isDuplicateKey(err, usersEmailIndex) {
			return storage.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("inserted user")
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("found user by email")
	return user, nil
}
