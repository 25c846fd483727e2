// Package mongodb implements storage.Storage on top of MongoDB
// collections "users" and "tasks".
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"

	usersEmailIndex       = "email_unique"
	tasksUserIDTitleIndex = "userId_title_unique"
	tasksUserIDDateIndex  = "userId_date"
)

type Storage struct {
	logger zerolog.Logger
	client *mongo.Client
	users  *mongo.Collection
	tasks  *mongo.Collection
}

func New(logger zerolog.Logger, client *mongo.Client, database string) *Storage {
	db := client.Database(database)
	return &Storage{
		logger: logger,
		client: client,
		users:  db.Collection(usersCollection),
		tasks:  db.Collection(tasksCollection),
	}
}

// EnsureIndexes creates the unique indexes the storage relies on to
// reject duplicate emails and duplicate task titles of the same owner.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(usersEmailIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	_, err = s.tasks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(tasksUserIDTitleIndex),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName(tasksUserIDDateIndex),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create tasks indexes: %w", err)
	}

	s.logger.Debug().Msg("ensured mongo indexes")
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// uniqueIndexes maps the key pattern of each unique index, as reported
// by the server on a duplicate key error, to the index name.
var uniqueIndexes = map[string]string{
	"_id":          "_id_",
	"email":        usersEmailIndex,
	"userId,title": tasksUserIDTitleIndex,
}

func isDuplicateKey(err error, index string) bool {
	name, ok := duplicateKeyIndex(err)
	return ok && name == index
}

// duplicateKeyIndex returns the name of the unique index a failed write
// violated.
func duplicateKeyIndex(err error) (string, bool) {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if isDuplicateKeyCode(we.Code) {
				return violatedIndex(we.Raw, we.Message)
			}
		}
		return "", false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && isDuplicateKeyCode(int(cmdErr.Code)) {
		return violatedIndex(cmdErr.Raw, cmdErr.Message)
	}
	return "", false
}

func isDuplicateKeyCode(code int) bool {
	switch code {
	case 11000, 11001, 12582:
		return true
	}
	return false
}

// violatedIndex prefers the keyPattern document of the server reply and
// falls back to the index name printed in the error message.
func violatedIndex(raw bson.Raw, message string) (string, bool) {
	if len(raw) > 0 {
		val, err := raw.LookupErr("keyPattern")
		if err == nil {
			if doc, ok := val.DocumentOK(); ok {
				elems, err := doc.Elements()
				if err == nil && len(elems) > 0 {
					keys := make([]string, 0, len(elems))
					for _, elem := range elems {
						keys = append(keys, elem.Key())
					}
					if name, ok := uniqueIndexes[strings.Join(keys, ",")]; ok {
						return name, true
					}
				}
			}
		}
	}

	_, rest, found := strings.Cut(message, " index: ")
	if !found {
		return "", false
	}
	name, _, _ := strings.Cut(rest, " ")
	return name, name != ""
}
