package poll

import (
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/httpapi"
)

// StartPoller runs PollOnce on the configured interval until the process
// exits, keeping the shared status value current for /sync/status.
func StartPoller(db *sql.DB, cfgVal *atomic.Value, syncStatus *httpapi.StatusVal, hub *events.Hub) {
	go func() {
		for {
			cfgAny := cfgVal.Load()
			if cfgAny == nil {
				time.Sleep(5 * time.Second)
				continue
			}
			cfg := cfgAny.(config.Config)

			interval := time.Duration(cfg.Polling.SyncSeconds) * time.Second
			if interval <= 0 {
				interval = 15 * time.Minute
			}
			time.Sleep(interval)

			cfg = cfgVal.Load().(config.Config)

			// If nothing enabled, skip quietly
			if !cfg.Email.Enabled && !cfg.Sync.Enabled {
				continue
			}

			started := false
			syncStatus.Update(func(st httpapi.SyncStatus) httpapi.SyncStatus {
				if st.Running {
					return st
				}
				started = true
				st.Running = true
				st.LastRunAt = time.Now().Format(time.RFC3339)
				return st
			})
			if !started {
				continue
			}

			added, err := PollOnce(db, cfg, func() {
				hub.Publish(events.MakeEvent("", events.TypeDogCreated, 1, nil))
			})

			if err != nil {
				log.Printf("[poll] error: %v", err)
			} else {
				log.Printf("[poll] ok added=%d", added)
			}

			syncStatus.Update(func(st httpapi.SyncStatus) httpapi.SyncStatus {
				st.Running = false
				st.LastAdded = added
				if err != nil {
					st.LastError = err.Error()
				} else {
					st.LastError = ""
					st.LastOkAt = time.Now().Format(time.RFC3339)
				}
				return st
			})

			hub.Publish(events.MakeEvent("", events.TypeSyncDone, 1, map[string]any{"added": added}))
		}
	}()
}
