package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DSN - строка подключения lib/pq
func (c ConfigDB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Login, c.Password, c.Database,
	)
}

// NewPostgres открывает пул соединений и проверяет, что база отвечает
func NewPostgres(ctx context.Context, c ConfigDB, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.DSN())
	if err != nil {
		return nil, err
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL DEFAULT '',
		image_url     TEXT NOT NULL DEFAULT '',
		role          VARCHAR(16) NOT NULL DEFAULT 'USER',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		id           UUID PRIMARY KEY,
		make         TEXT NOT NULL,
		model        TEXT NOT NULL,
		year         INT NOT NULL,
		price        NUMERIC(12, 2) NOT NULL DEFAULT 0,
		mileage      INT NOT NULL DEFAULT 0,
		color        TEXT NOT NULL DEFAULT '',
		fuel_type    TEXT NOT NULL DEFAULT '',
		transmission TEXT NOT NULL DEFAULT '',
		body_type    TEXT NOT NULL DEFAULT '',
		seats        INT,
		description  TEXT NOT NULL DEFAULT '',
		images       TEXT[] NOT NULL DEFAULT '{}',
		status       VARCHAR(16) NOT NULL DEFAULT 'AVAILABLE',
		featured     BOOLEAN NOT NULL DEFAULT FALSE,
		indexed      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS cars_status_created_idx ON cars (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS saved_cars (
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		car_id     UUID NOT NULL REFERENCES cars (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, car_id)
	)`,
	`CREATE TABLE IF NOT EXISTS dealership (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS working_hours (
		dealership_id UUID NOT NULL REFERENCES dealership (id) ON DELETE CASCADE,
		day_of_week   VARCHAR(9) NOT NULL,
		open_time     VARCHAR(5) NOT NULL,
		close_time    VARCHAR(5) NOT NULL,
		is_open       BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (dealership_id, day_of_week)
	)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id TEXT NOT NULL,
		make    TEXT NOT NULL,
		weight  INT NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, make)
	)`,
}

// EnsureSchema создает таблицы, если их еще нет
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
