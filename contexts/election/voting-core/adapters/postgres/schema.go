package postgresadapter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SchemaStatements create the voting-core tables. Every statement is
// idempotent so the list can run on each start.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id         VARCHAR(16) PRIMARY KEY,
		name       TEXT NOT NULL,
		password   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         VARCHAR(16) PRIMARY KEY,
		username   VARCHAR(32) NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		event_id   VARCHAR(16) NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS users_event_id_idx ON users (event_id)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL,
		photo    BYTEA NULL,
		event_id VARCHAR(16) NOT NULL REFERENCES events(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS candidates_event_id_idx ON candidates (event_id)`,
	`CREATE TABLE IF NOT EXISTS votes (
		user_id      VARCHAR(16) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		candidate_id BIGINT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		event_id     VARCHAR(16) NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		cast_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, event_id)
	)`,
	`CREATE INDEX IF NOT EXISTS votes_event_candidate_idx ON votes (event_id, candidate_id)`,
}

// EnsureSchema applies SchemaStatements in a single transaction.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, statement := range SchemaStatements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("apply schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
