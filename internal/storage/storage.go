package storage

import (
	"context"

	"trp/internal/config"
	"trp/internal/domain"
)

// Storage persists and loads report history
type Storage interface {
	Save(ctx context.Context, record domain.RunRecord) error
	// List returns up to limit records, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
}

// New returns the MySQL storage when a history DSN is configured,
// otherwise the JSON file storage.
func New(cfg *config.Config) Storage {
	if cfg.HistoryDSN != "" {
		return NewMySQLStorage(cfg)
	}
	return NewJSONStorage(cfg)
}
