package postgres

import (
	"context"
	"fmt"
)

const tasksUserIDTitleConstraint = "tasks_user_id_title_key"

var schemaQueries = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    username   TEXT        NOT NULL,
    email      TEXT        NOT NULL UNIQUE,
    password   TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
)
`,
	`
CREATE TABLE IF NOT EXISTS tasks (
    id          TEXT PRIMARY KEY,
    user_id     TEXT        NOT NULL REFERENCES users (id),
    title       TEXT        NOT NULL,
    description TEXT        NOT NULL DEFAULT '',
    type        TEXT        NOT NULL,
    status      TEXT        NOT NULL,
    priority    TEXT        NOT NULL,
    expire_date TIMESTAMPTZ,
    due_time    TEXT,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL,
    CONSTRAINT ` + tasksUserIDTitleConstraint + ` UNIQUE (user_id, title)
)
`,
	`
CREATE INDEX IF NOT EXISTS tasks_user_id_created_at_idx
    ON tasks (user_id, created_at DESC)
`,
}

// EnsureSchema creates the tables and indexes if they don't exist.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	for _, query := range schemaQueries {
		_, err := s.pgPool.Exec(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	s.logger.Debug().
		Int("statements", len(schemaQueries)).
		Msg("applied schema")
	return nil
}
