package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-api/internal/metrics"
	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/storage"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStorage
	tokens TokenService
	hasher PasswordHasher

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStorage,
	tokens TokenService,
	hasher PasswordHasher,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

func (s *authServiceImpl) Signup(ctx context.Context, params SignupParams) (*AuthResult, error) {
	user := models.User{
		Username:  params.Username,
		Email:     params.Email,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			metrics.IncrementAuthAttempt(metrics.AuthSignup, metrics.ResultRejected)
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	result, err := s.issue(&user)
	if err != nil {
		return nil, err
	}

	metrics.IncrementAuthAttempt(metrics.AuthSignup, metrics.ResultSuccess)
	s.logger.Info().
		Str("user_id", user.ID).
		Msg("signed up")
	return result, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			// Timing must match the wrong-password path.
			_, _ = s.hasher.Compare(params.Password, s.getDummyHash())
			metrics.IncrementAuthAttempt(metrics.AuthLogin, metrics.ResultRejected)
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user")

	match, err := s.hasher.Compare(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().
			Str("user_id", user.ID).
			Msg("passwords do not match")
		metrics.IncrementAuthAttempt(metrics.AuthLogin, metrics.ResultRejected)
		return nil, ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	metrics.IncrementAuthAttempt(metrics.AuthLogin, metrics.ResultSuccess)
	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return result, nil
}

func (s *authServiceImpl) issue(user *models.User) (*AuthResult, error) {
	identity := Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	return &AuthResult{
		Identity: identity,
		Token:    token,
	}, nil
}

func (s *authServiceImpl) getDummyHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to hash dummy password")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
