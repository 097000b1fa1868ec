package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"todo/internal/backend/file"
	"todo/internal/backend/googletasks"
	"todo/internal/backend/sqlite"
	"todo/internal/config"
	"todo/internal/snapshot"
	"todo/internal/task"
)

// ErrAuth marks persistence that could not be opened for lack of
// credentials.
var ErrAuth = errors.New("auth error")

// OpenPersistence opens the backend selected by cfg.Backend.
func OpenPersistence(ctx context.Context, cfg *config.Config) (task.Persistence, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return snapshot.NewPersistence(file.New(cfg.DataDir), cfg.Key, cfg.Log()), nil

	case config.BackendSQLite:
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		slot, err := sqlite.Open(filepath.Join(cfg.DataDir, sqlite.FileName), cfg.Log())
		if err != nil {
			return nil, err
		}
		return snapshot.NewPersistence(slot, cfg.Key, cfg.Log()), nil

	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: oauth_client.json not found in %s", ErrAuth, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: todo login)", ErrAuth)
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
}
