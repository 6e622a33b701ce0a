package app

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IT-Nick/examdesk/internal/infra/config"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	log.Println("Database connected successfully!")
	return db, nil
}
