package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/option"

	"github.com/IT-Nick/examdesk/internal/infra/config"
	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/IT-Nick/examdesk/internal/storage/bolt"
	"github.com/IT-Nick/examdesk/internal/storage/jsonfile"
	"github.com/IT-Nick/examdesk/internal/storage/memory"
	"github.com/IT-Nick/examdesk/internal/storage/postgres"
	"github.com/IT-Nick/examdesk/internal/storage/sheets"
)

// OpenStorage создает хранилище, выбранное в storage.type
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	const op = "app.OpenStorage"

	switch cfg.Storage.Type {
	case storage.TypeMemory:
		return memory.New(), nil

	case storage.TypeJSON:
		s, err := jsonfile.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, nil

	case storage.TypeBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.BoltPath), 0755); err != nil {
			return nil, fmt.Errorf("%s: failed to create bolt directory: %w", op, err)
		}
		s, err := bolt.New(cfg.Storage.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, nil

	case storage.TypeSheets:
		var creds option.ClientOption
		if cfg.Storage.Sheets.CredentialsJSON != "" {
			creds = option.WithCredentialsJSON([]byte(cfg.Storage.Sheets.CredentialsJSON))
		} else {
			creds = option.WithCredentialsFile(cfg.Storage.Sheets.CredentialsFile)
		}
		s, err := sheets.New(ctx, cfg.Storage.Sheets.SpreadsheetID, creds)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, nil

	case storage.TypePostgres:
		pool, err := InitDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s, err := postgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%s: unknown storage type %q", op, cfg.Storage.Type)
	}
}
