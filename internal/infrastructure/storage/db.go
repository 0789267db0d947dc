package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS articles (
		id           BIGSERIAL PRIMARY KEY,
		url          TEXT NOT NULL UNIQUE,
		title        TEXT NOT NULL DEFAULT '',
		author       TEXT,
		source       TEXT,
		image        TEXT,
		favicon      TEXT,
		score        DOUBLE PRECISION,
		full_text    TEXT NOT NULL DEFAULT '',
		published_at TIMESTAMPTZ,
		analysis     JSONB,
		fact_check   JSONB,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bd_matches (
		id         BIGSERIAL PRIMARY KEY,
		article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		source     TEXT NOT NULL,
		url        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS int_matches (
		id         BIGSERIAL PRIMARY KEY,
		article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		source     TEXT NOT NULL,
		url        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles (published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_bd_matches_article ON bd_matches (article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_int_matches_article ON int_matches (article_id)`,
}

// EnsureSchema creates the tables and indexes when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
