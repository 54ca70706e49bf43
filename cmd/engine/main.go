package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/httpapi"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/poll"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/scheduler"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one), else local folder.
	dataDir := os.Getenv("HOOMAN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single instance per data dir; two engines sharing one sqlite file
	// corrupt each other's WAL.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running for data dir %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		// Optional standalone shelter roster next to the config.
		if err := config.OverlayShelters(&cfg, filepath.Join(dataDir, "shelters.yml")); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "hoomanfinder.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	syncStatus := &httpapi.StatusVal{}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		SyncStatus:  syncStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		DeleteDog:   store.DeleteDog,
		RunSyncOnce: poll.PollOnce,
	})

	poll.StartPoller(db.Pool, &cfgVal, syncStatus, hub)

	// Periodic WAL checkpoint keeps the db file compact for backups.
	go scheduler.Every(context.Background(), time.Hour, "wal-checkpoint", func(ctx context.Context) error {
		_, err := db.Pool.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE);`)
		return err
	})

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Localhost-only shutdown so the UI shell can stop the engine cleanly.
	mux.HandleFunc("/shutdown", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	})

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
