package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
)

type SyncHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	SyncStatus  *StatusVal
	Hub         *events.Hub
	RunSyncOnce func(db *sql.DB, cfg config.Config, onNewDog func()) (added int, err error)
}

func (h SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.SyncStatus.Load())
}

func (h SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	started := false
	h.SyncStatus.Update(func(st SyncStatus) SyncStatus {
		if st.Running {
			return st
		}
		started = true
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
		st.LastError = ""
		st.LastAdded = 0
		return st
	})
	if !started {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	reqID := RequestIDFrom(r.Context())

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		added, err := h.RunSyncOnce(h.DB, cfg, func() {
			h.Hub.Publish(events.MakeEvent("", events.TypeDogCreated, 1, nil))
		})

		now := time.Now().Format(time.RFC3339)
		h.SyncStatus.Update(func(st SyncStatus) SyncStatus {
			st.Running = false
			st.LastRunAt = now
			st.LastAdded = added
			if err != nil {
				st.LastError = err.Error()
			} else {
				st.LastError = ""
				st.LastOkAt = now
			}
			return st
		})
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSyncDone, 1, map[string]any{"added": added}))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
