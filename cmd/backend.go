package cmd

import (
	"fmt"

	"github.com/user/vidnotes/config"
	"github.com/user/vidnotes/db"
	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/notes"
)

// openBackend opens the persistence backend named in the storage config.
// The returned close func is never nil.
func openBackend(storage config.StorageConfig) (notes.Persistence, func() error, error) {
	switch storage.Backend {
	case config.BackendSQLite:
		store, err := db.OpenSQLiteStore(storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return store, store.Close, nil
	case config.BackendBolt:
		store, err := db.OpenBoltStore(storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return store, store.Close, nil
	case config.BackendMemory:
		logger.Log.Warn().Msg("memory storage backend: notes are lost on exit")
		return notes.NewMemoryBackend(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", storage.Backend)
	}
}

// openStore opens the configured backend and wraps it in a note store.
func openStore() (*notes.Store, func() error, error) {
	backend, closeFn, err := openBackend(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Debug().Str("backend", cfg.Storage.Backend).Str("path", cfg.Storage.Path).Msg("storage opened")
	return notes.NewStore(backend), closeFn, nil
}
