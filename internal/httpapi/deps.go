package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Shared snapshots
	CfgVal     *atomic.Value // stores config.Config
	SyncStatus *StatusVal

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	DeleteDog func(ctx context.Context, db *sql.DB, id int64) error

	// Sync entrypoint (inject for testability)
	RunSyncOnce func(db *sql.DB, cfg config.Config, onNewDog func()) (added int, err error)
}
